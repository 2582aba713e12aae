package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

// resolvedMsg carries the outcome of one request back to the event loop.
type resolvedMsg struct {
	sub    widget.Submission
	answer string
	err    error
}

// askCmd runs the request off the event loop
func askCmd(ctx context.Context, ctrl *widget.Controller, sub widget.Submission) tea.Cmd {
	return func() tea.Msg {
		answer, err := ctrl.Await(ctx, sub)
		return resolvedMsg{sub: sub, answer: answer, err: err}
	}
}
