package chatbot

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Exchange is one answered prompt, kept for the operator's log.
type Exchange struct {
	ID           string
	Prompt       string
	Response     string
	Model        string
	FinishReason string
	CreatedAt    time.Time
}

// Repo — exchange log
type Repo interface {
	SaveExchange(ctx context.Context, ex *Exchange) error
}

// Service — turns one prompt into one plain-text answer
type Service interface {
	Answer(ctx context.Context, prompt string) (string, error)
}

var (
	ErrEmptyPrompt  = errors.New("chatbot: empty prompt")
	ErrMissingToken = errors.New("chatbot: model API token is not configured")
)
