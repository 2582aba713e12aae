package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Vovarama1992/typhoon-chat/internal/widget"
)

const (
	avatarLabel = "✈ Typhoon"

	headerHeight = 1
	footerHeight = 1
	inputHeight  = 3
)

// Model renders a widget.Controller in the terminal. All controller calls
// happen on the bubbletea event loop; only the request itself runs in a
// command goroutine.
type Model struct {
	ctx  context.Context
	ctrl *widget.Controller

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

func New(ctx context.Context, ctrl *widget.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about fighter jets…"
	ti.Prompt = "› "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		input:    ti,
		viewport: viewport.New(80, 24-headerHeight-footerHeight-inputHeight),
		spinner:  sp,
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight-inputHeight)
		m.input.Width = max(10, msg.Width-6)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case resolvedMsg:
		m.ctrl.Resolve(msg.sub, msg.answer, msg.err)
		var cmd tea.Cmd
		if m.ctrl.Enabled() {
			cmd = m.input.Focus()
		}
		m.refresh()
		return m, cmd

	case spinner.TickMsg:
		if _, pending := m.ctrl.Pending(); !pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+l":
		if err := m.ctrl.Clear(); err != nil {
			return m, nil
		}
		m.input.Reset()
		cmd := m.input.Focus()
		m.refresh()
		return m, cmd

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		if !m.ctrl.Enabled() {
			return m, nil
		}
		sub, ok := m.ctrl.Begin(m.input.Value())
		if !ok {
			return m, nil
		}
		m.input.Reset()
		m.input.Blur()
		m.refresh()
		return m, tea.Batch(askCmd(m.ctx, m.ctrl, sub), m.spinner.Tick)
	}

	if !m.ctrl.Enabled() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) View() string {
	header := titleStyle.Render("Typhoon")

	box := inputBoxStyle
	if !m.ctrl.Enabled() {
		box = disabledInputBoxStyle
	}
	input := box.Width(max(10, m.width-2)).Render(m.input.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		helpStyle.Render(m.help()),
	)
}

func (m Model) help() string {
	keys := []string{"enter send", "pgup/pgdown scroll"}
	if m.ctrl.Config().AllowClear {
		keys = append(keys, "ctrl+l clear")
	}
	keys = append(keys, "esc quit")
	return strings.Join(keys, " • ")
}

// refresh re-renders the transcript into the viewport and keeps the newest
// bubble visible.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	cfg := m.ctrl.Config()
	bubbleWidth := max(20, m.width*3/4)

	var b strings.Builder
	for i, msg := range m.ctrl.Transcript() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderBubble(msg, cfg.ShowAvatar, bubbleWidth, m.width, m.spinner.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func renderBubble(msg widget.Message, showAvatar bool, bubbleWidth, width int, spin string) string {
	if msg.Sender == widget.SenderUser {
		bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(msg.Text, bubbleWidth-2))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	text := msg.Text
	if msg.Pending {
		text = pendingStyle.Render(spin + " " + text)
	}
	bubble := botBubbleStyle.MaxWidth(bubbleWidth).Render(wrap(text, bubbleWidth-2))
	if !showAvatar {
		return bubble
	}
	return lipgloss.JoinVertical(lipgloss.Left, avatarStyle.Render(avatarLabel), bubble)
}

func wrap(text string, width int) string {
	if lipgloss.Width(text) <= width {
		return text
	}
	return lipgloss.NewStyle().Width(max(1, width)).Render(text)
}
