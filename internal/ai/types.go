package ai

import "github.com/sashabaranov/go-openai/jsonschema"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one conversation turn. Assistant turns may carry tool calls;
// tool turns answer one call through ToolCallID.
type Message struct {
	Role       Role
	Content    string
	Name       string
	ToolCalls  []ToolCall
	ToolCallID string
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type Tool struct {
	Name        string
	Description string
	Parameters  *jsonschema.Definition
}

type ChatRequest struct {
	System   string
	Messages []Message
	Tools    []Tool
}

type ChatReply struct {
	Text      string
	ToolCalls []ToolCall
	// Message is the assistant turn as returned, for echoing back alongside
	// tool results.
	Message Message
}

type StructuredRequest struct {
	Name   string
	Prompt string
	Schema *jsonschema.Definition
}
