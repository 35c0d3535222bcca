package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/saeid-a/AtlasCoachBack/internal/ai"
	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type stubCoachMessages struct {
	history []models.CoachMessage
	created []models.CoachMessage
	total   int
	cleared bool
}

func (s *stubCoachMessages) Create(_ context.Context, _ string, role, content string) (*models.CoachMessage, error) {
	msg := models.CoachMessage{ID: int64(len(s.created) + 1), Role: role, Content: content}
	s.created = append(s.created, msg)
	return &msg, nil
}

func (s *stubCoachMessages) ListRecent(_ context.Context, _ string, _ int) ([]models.CoachMessage, error) {
	return s.history, nil
}

func (s *stubCoachMessages) ListPage(_ context.Context, _ string, _ int, _ int) ([]models.CoachMessage, int, error) {
	return s.history, s.total, nil
}

func (s *stubCoachMessages) DeleteAll(_ context.Context, _ string) error {
	s.cleared = true
	return nil
}

type stubCoachModel struct {
	replies  []*ai.ChatReply
	err      error
	requests []ai.ChatRequest
}

func (m *stubCoachModel) Converse(_ context.Context, req ai.ChatRequest) (*ai.ChatReply, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

type stubStatuses struct {
	subscribed bool
}

func (s stubStatuses) Status(_ context.Context, phone string) (models.SubscriptionStatus, error) {
	return models.SubscriptionStatus{Phone: phone, IsSubscribed: s.subscribed, Registered: true}, nil
}

type stubRegenerator struct {
	calls int
	err   error
}

func (r *stubRegenerator) Regenerate(_ context.Context, _ string) (*models.PlanSet, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &models.PlanSet{}, nil
}

func newTestCoach(messages *stubCoachMessages, model *stubCoachModel, subscribed bool, plans *stubRegenerator) *CoachService {
	profiles := &stubProfileRepo{profile: &models.UserProfile{Phone: "+5491122334455", Name: "Ana"}}
	service := NewCoachService(messages, model, stubStatuses{subscribed: subscribed}, plans, profiles, "es-AR")
	service.now = func() time.Time { return time.Date(2026, 3, 9, 20, 30, 0, 0, time.FixedZone("ART", -3*60*60)) }
	return service
}

func TestCoachSendRequiresSubscription(t *testing.T) {
	model := &stubCoachModel{}
	service := newTestCoach(&stubCoachMessages{}, model, false, &stubRegenerator{})

	if _, err := service.Send(context.Background(), "+5491122334455", "hola"); !errors.Is(err, ErrSubscriptionInactive) {
		t.Fatalf("expected ErrSubscriptionInactive, got %v", err)
	}
	if len(model.requests) != 0 {
		t.Errorf("expected no model call")
	}
}

func TestCoachSendStoresBothTurns(t *testing.T) {
	messages := &stubCoachMessages{history: []models.CoachMessage{
		{Role: models.CoachRoleUser, Content: "hola"},
		{Role: models.CoachRoleAssistant, Content: "¡Hola Ana!"},
	}}
	model := &stubCoachModel{replies: []*ai.ChatReply{{Text: "Hacé 3 series."}}}
	service := newTestCoach(messages, model, true, &stubRegenerator{})

	reply, err := service.Send(context.Background(), "+5491122334455", "  ¿cuántas series?  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.Message.Content != "Hacé 3 series." || reply.PlansRegenerated {
		t.Errorf("unexpected reply %+v", reply)
	}

	req := model.requests[0]
	if len(req.Messages) != 3 || req.Messages[2].Content != "¿cuántas series?" {
		t.Errorf("unexpected conversation %+v", req.Messages)
	}
	if !strings.Contains(req.System, "Ana") {
		t.Errorf("expected system prompt to name the user")
	}
	if len(messages.created) != 2 || messages.created[0].Role != models.CoachRoleUser || messages.created[1].Role != models.CoachRoleAssistant {
		t.Errorf("unexpected stored messages %+v", messages.created)
	}
}

func TestCoachSendRunsPlanTool(t *testing.T) {
	model := &stubCoachModel{replies: []*ai.ChatReply{
		{
			ToolCalls: []ai.ToolCall{{ID: "call-1", Name: ai.GenerateNewPlansTool, Arguments: "{}"}},
			Message: ai.Message{
				Role:      ai.RoleAssistant,
				ToolCalls: []ai.ToolCall{{ID: "call-1", Name: ai.GenerateNewPlansTool, Arguments: "{}"}},
			},
		},
		{Text: "¡Listo! Tus planes nuevos ya están disponibles."},
	}}
	plans := &stubRegenerator{}
	service := newTestCoach(&stubCoachMessages{}, model, true, plans)

	reply, err := service.Send(context.Background(), "+5491122334455", "quiero una rutina nueva")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plans.calls != 1 || !reply.PlansRegenerated {
		t.Errorf("expected plans regenerated, calls=%d reply=%+v", plans.calls, reply)
	}

	second := model.requests[1].Messages
	toolTurn := second[len(second)-1]
	if toolTurn.Role != ai.RoleTool || toolTurn.ToolCallID != "call-1" || !strings.Contains(toolTurn.Content, `"success":true`) {
		t.Errorf("unexpected tool turn %+v", toolTurn)
	}
}

func TestCoachSendToolFailureReportedToModel(t *testing.T) {
	call := ai.ToolCall{ID: "call-1", Name: ai.GenerateNewPlansTool}
	model := &stubCoachModel{replies: []*ai.ChatReply{
		{ToolCalls: []ai.ToolCall{call}, Message: ai.Message{Role: ai.RoleAssistant, ToolCalls: []ai.ToolCall{call}}},
		{Text: "No pude generar los planes, probá más tarde."},
	}}
	service := newTestCoach(&stubCoachMessages{}, model, true, &stubRegenerator{err: ErrPlanGeneration})

	reply, err := service.Send(context.Background(), "+5491122334455", "planes nuevos")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reply.PlansRegenerated {
		t.Errorf("expected no regeneration flag")
	}
	toolTurn := model.requests[1].Messages[len(model.requests[1].Messages)-1]
	if !strings.Contains(toolTurn.Content, `"success":false`) {
		t.Errorf("expected failure result, got %s", toolTurn.Content)
	}
}

func TestCoachSendModelError(t *testing.T) {
	messages := &stubCoachMessages{}
	model := &stubCoachModel{err: errors.New("503")}
	service := newTestCoach(messages, model, true, &stubRegenerator{})

	if _, err := service.Send(context.Background(), "+5491122334455", "hola"); !errors.Is(err, ErrCoachUnavailable) {
		t.Fatalf("expected ErrCoachUnavailable, got %v", err)
	}
	if len(messages.created) != 0 {
		t.Errorf("expected nothing stored")
	}
}

func TestCoachHistoryGreeting(t *testing.T) {
	service := newTestCoach(&stubCoachMessages{}, &stubCoachModel{}, true, &stubRegenerator{})

	messages, total, err := service.History(context.Background(), "+5491122334455", 1, 20)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 1 || len(messages) != 1 || !strings.Contains(messages[0].Content, "Ana") {
		t.Errorf("unexpected greeting %+v", messages)
	}
	if messages[0].Role != models.CoachRoleAssistant {
		t.Errorf("expected assistant greeting")
	}
	if want := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC); !messages[0].CreatedAt.Equal(want) || messages[0].CreatedAt.Location() != time.UTC {
		t.Errorf("expected greeting stamped %v in UTC, got %v", want, messages[0].CreatedAt)
	}
}

func TestCoachReset(t *testing.T) {
	messages := &stubCoachMessages{}
	service := newTestCoach(messages, &stubCoachModel{}, true, &stubRegenerator{})

	if err := service.Reset(context.Background(), "+5491122334455"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !messages.cleared {
		t.Errorf("expected conversation cleared")
	}
}
