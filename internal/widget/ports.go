package widget

import (
	"context"

	"github.com/pkg/errors"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one bubble of the transcript. Only the pending placeholder
// ever changes after it was appended, and only once.
type Message struct {
	ID      int
	Text    string
	Sender  Sender
	Pending bool
}

// Submission is the ticket for the single outstanding request.
type Submission struct {
	Seq           uint64
	Prompt        string
	PlaceholderID int
}

// Endpoint — the server side that turns a prompt into an answer
type Endpoint interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type EventKind int

const (
	EventAppended EventKind = iota
	EventUpdated
	EventCleared
	EventInputState
)

type Event struct {
	Kind    EventKind
	Message Message
	Enabled bool
}

var (
	ErrClearDisabled = errors.New("widget: clear is not enabled for this widget")
	ErrNoEndpoint    = errors.New("widget: no chat endpoint configured")
)
