package ai

import "context"

// Completer — the model behind /chatbot, knows nothing about HTTP or storage
type Completer interface {
	Complete(ctx context.Context, msgs []Message, maxTokens int) (Completion, error)
}

// Message — universal chat message format for the model
type Message struct {
	Role string // "user" | "assistant" | "system"
	Text string
}

type Completion struct {
	Text         string
	FinishReason string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	FinishLength = "length"
)
