package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var ErrEmptyResponse = errors.New("ai: empty response")

type Options struct {
	APIKey     string
	BaseURL    string
	PlanModel  string
	ChatModel  string
	ImageModel string
}

// Client talks to any OpenAI-compatible endpoint. Plan generation and chat use
// separate models.
type Client struct {
	api        *openai.Client
	planModel  string
	chatModel  string
	imageModel string
}

func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		planModel:  opts.PlanModel,
		chatModel:  opts.ChatModel,
		imageModel: opts.ImageModel,
	}
}

// GenerateStructured asks the plan model for a JSON document constrained by
// req.Schema and decodes it into out.
func (c *Client) GenerateStructured(ctx context.Context, req StructuredRequest, out any) error {
	apiReq := openai.ChatCompletionRequest{
		Model: c.planModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.Schema != nil {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Name,
				Schema: req.Schema,
			},
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return fmt.Errorf("generate %s: %w", req.Name, err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("generate %s: %w", req.Name, ErrEmptyResponse)
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)
	if content == "" {
		return fmt.Errorf("generate %s: %w", req.Name, ErrEmptyResponse)
	}
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode %s: %w", req.Name, err)
	}
	return nil
}

func (c *Client) Converse(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		messages = append(messages, toAPIMessage(msg))
	}

	apiReq := openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
	}
	for _, tool := range req.Tools {
		apiReq.Tools = append(apiReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("coach chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("coach chat: %w", ErrEmptyResponse)
	}

	apiMsg := resp.Choices[0].Message
	reply := &ChatReply{
		Text: strings.TrimSpace(apiMsg.Content),
		Message: Message{
			Role:    RoleAssistant,
			Content: apiMsg.Content,
		},
	}
	for _, call := range apiMsg.ToolCalls {
		toolCall := ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		}
		reply.ToolCalls = append(reply.ToolCalls, toolCall)
		reply.Message.ToolCalls = append(reply.Message.ToolCalls, toolCall)
	}
	return reply, nil
}

// GenerateImage returns the raw bytes of one generated image.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("generate image: %w", ErrEmptyResponse)
	}

	image, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return image, nil
}

func toAPIMessage(msg Message) openai.ChatCompletionMessage {
	apiMsg := openai.ChatCompletionMessage{
		Role:       string(msg.Role),
		Content:    msg.Content,
		Name:       msg.Name,
		ToolCallID: msg.ToolCallID,
	}
	for _, call := range msg.ToolCalls {
		apiMsg.ToolCalls = append(apiMsg.ToolCalls, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	return apiMsg
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
