package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/AtlasCoachBack/internal/ai"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

const (
	coachHistoryLimit   = 40
	coachMaxToolRounds  = 3
	coachMaxMessageSize = 4000
)

type coachModel interface {
	Converse(ctx context.Context, req ai.ChatRequest) (*ai.ChatReply, error)
}

type coachMessageStore interface {
	Create(ctx context.Context, phone, role, content string) (*models.CoachMessage, error)
	ListRecent(ctx context.Context, phone string, limit int) ([]models.CoachMessage, error)
	ListPage(ctx context.Context, phone string, limit int, offset int) ([]models.CoachMessage, int, error)
	DeleteAll(ctx context.Context, phone string) error
}

type planRegenerator interface {
	Regenerate(ctx context.Context, phone string) (*models.PlanSet, error)
}

type CoachService struct {
	messages coachMessageStore
	model    coachModel
	statuses statusReader
	plans    planRegenerator
	profiles profileReader
	locale   string
	now      func() time.Time
}

func NewCoachService(
	messages coachMessageStore,
	model coachModel,
	statuses statusReader,
	plans planRegenerator,
	profiles profileReader,
	locale string,
) *CoachService {
	return &CoachService{
		messages: messages,
		model:    model,
		statuses: statuses,
		plans:    plans,
		profiles: profiles,
		locale:   locale,
		now:      time.Now,
	}
}

type toolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Send forwards the user's message with the stored conversation and returns
// the coach's final answer. Both turns are stored only when the model replies.
func (s *CoachService) Send(ctx context.Context, phone, content string) (*models.CoachReply, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || len(trimmed) > coachMaxMessageSize {
		return nil, ErrInvalidInput
	}

	status, err := s.statuses.Status(ctx, phone)
	if err != nil {
		return nil, err
	}
	if !status.IsSubscribed {
		return nil, ErrSubscriptionInactive
	}

	profile, err := s.profiles.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	history, err := s.messages.ListRecent(ctx, phone, coachHistoryLimit)
	if err != nil {
		return nil, err
	}

	conversation := make([]ai.Message, 0, len(history)+1)
	for _, msg := range history {
		conversation = append(conversation, ai.Message{Role: ai.Role(msg.Role), Content: msg.Content})
	}
	conversation = append(conversation, ai.Message{Role: ai.RoleUser, Content: trimmed})

	system := ai.CoachSystemPrompt(*profile, s.locale)
	regenerated := false
	answer := ""

	for round := 0; round < coachMaxToolRounds && answer == ""; round++ {
		reply, err := s.model.Converse(ctx, ai.ChatRequest{
			System:   system,
			Messages: conversation,
			Tools:    ai.CoachTools,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCoachUnavailable, err)
		}

		if len(reply.ToolCalls) == 0 {
			if reply.Text == "" {
				return nil, fmt.Errorf("%w: %w", ErrCoachUnavailable, ai.ErrEmptyResponse)
			}
			answer = reply.Text
			break
		}

		conversation = append(conversation, reply.Message)
		for _, call := range reply.ToolCalls {
			result := s.runTool(ctx, phone, call)
			if result.Success && call.Name == ai.GenerateNewPlansTool {
				regenerated = true
			}
			encoded, err := json.Marshal(result)
			if err != nil {
				return nil, err
			}
			conversation = append(conversation, ai.Message{
				Role:       ai.RoleTool,
				Name:       call.Name,
				ToolCallID: call.ID,
				Content:    string(encoded),
			})
		}
	}
	if answer == "" {
		return nil, fmt.Errorf("%w: no answer after tool calls", ErrCoachUnavailable)
	}

	if _, err := s.messages.Create(ctx, phone, models.CoachRoleUser, trimmed); err != nil {
		return nil, err
	}
	stored, err := s.messages.Create(ctx, phone, models.CoachRoleAssistant, answer)
	if err != nil {
		return nil, err
	}

	return &models.CoachReply{
		Message:          *stored,
		PlansRegenerated: regenerated,
	}, nil
}

func (s *CoachService) runTool(ctx context.Context, phone string, call ai.ToolCall) toolResult {
	if call.Name != ai.GenerateNewPlansTool {
		return toolResult{Error: "unknown function " + call.Name}
	}

	if _, err := s.plans.Regenerate(ctx, phone); err != nil {
		log.Printf("coach regenerate plans for %s: %v", phone, err)
		return toolResult{Error: "the new plans could not be generated, ask the user to try again later"}
	}
	return toolResult{Success: true, Message: "New workout and nutrition plans were generated and saved."}
}

// History returns one page of the conversation. An empty conversation yields
// the coach's greeting, which is not stored.
func (s *CoachService) History(ctx context.Context, phone string, page, limit int) ([]models.CoachMessage, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	messages, total, err := s.messages.ListPage(ctx, phone, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if total > 0 {
		return messages, total, nil
	}

	profile, err := s.profiles.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrProfileNotFound
		}
		return nil, 0, err
	}

	greeting := models.CoachMessage{
		Role:      models.CoachRoleAssistant,
		Content:   coachGreeting(profile.Name, s.locale),
		CreatedAt: s.now().UTC(),
	}
	if page > 1 {
		return []models.CoachMessage{}, 1, nil
	}
	return []models.CoachMessage{greeting}, 1, nil
}

func (s *CoachService) Reset(ctx context.Context, phone string) error {
	return s.messages.DeleteAll(ctx, phone)
}

func coachGreeting(name, locale string) string {
	switch {
	case strings.HasPrefix(locale, "es"):
		return fmt.Sprintf("¡Hola %s! Soy Atlas, tu coach virtual. ¿En qué te puedo ayudar hoy?", name)
	case strings.HasPrefix(locale, "pt"):
		return fmt.Sprintf("Olá %s! Eu sou o Atlas, seu coach virtual. Como posso ajudar hoje?", name)
	default:
		return fmt.Sprintf("Hi %s! I'm Atlas, your virtual coach. How can I help you today?", name)
	}
}
