package widget

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Controller owns the transcript and the input state and drives the
// submit -> request -> resolve cycle. It knows nothing about rendering;
// renderers subscribe with OnChange.
type Controller struct {
	mu sync.Mutex

	cfg      Config
	endpoint Endpoint

	transcript []Message
	nextID     int

	draft   string
	enabled bool
	focused bool

	seq     uint64
	pending *Submission

	observers []func(Event)
}

func New(cfg Config, endpoint Endpoint) *Controller {
	c := &Controller{
		cfg:      cfg.withDefaults(),
		endpoint: endpoint,
	}
	c.Initialize()
	return c
}

// Initialize seeds the transcript with the greeting and enables input.
func (c *Controller) Initialize() {
	c.mu.Lock()
	events := c.reset()
	c.mu.Unlock()

	c.emit(events)
}

func (c *Controller) OnChange(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// SetDraft mirrors the input field. Ignored while a request is pending.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		c.draft = text
	}
}

// Submit runs one whole exchange synchronously. It returns false when the
// draft was blank (or a request is already pending) and nothing happened.
func (c *Controller) Submit(ctx context.Context, draft string) bool {
	sub, ok := c.Begin(draft)
	if !ok {
		return false
	}

	answer, err := c.Await(ctx, sub)
	c.Resolve(sub, answer, err)
	return true
}

// Begin performs the synchronous half of a submit: user bubble, disabled
// input, placeholder bubble. The returned ticket must be passed to Resolve.
func (c *Controller) Begin(draft string) (Submission, bool) {
	text := strings.TrimSpace(draft)
	if text == "" {
		return Submission{}, false
	}

	c.mu.Lock()
	if !c.enabled || c.pending != nil {
		c.mu.Unlock()
		return Submission{}, false
	}

	c.draft = ""
	user := c.appendLocked(text, SenderUser, false)
	c.enabled = false
	c.focused = false
	placeholder := c.appendLocked(c.cfg.PlaceholderText, SenderBot, true)

	c.seq++
	sub := Submission{Seq: c.seq, Prompt: text, PlaceholderID: placeholder.ID}
	c.pending = &sub
	c.mu.Unlock()

	log.Debug().Str("component", "widget").Uint64("seq", sub.Seq).Msg("submission started")

	c.emit([]Event{
		{Kind: EventAppended, Message: user},
		{Kind: EventInputState, Enabled: false},
		{Kind: EventAppended, Message: placeholder},
	})
	return sub, true
}

// Await issues the request for sub. A panicking endpoint is reported as an
// error so the submission still resolves.
func (c *Controller) Await(ctx context.Context, sub Submission) (answer string, err error) {
	if c.endpoint == nil {
		return "", ErrNoEndpoint
	}

	defer func() {
		if r := recover(); r != nil {
			answer, err = "", errors.Errorf("%v", r)
		}
	}()

	return c.endpoint.Ask(ctx, sub.Prompt)
}

// Resolve writes the outcome into the placeholder and re-enables input.
// It reports false when sub is no longer the pending submission (the
// transcript was cleared meanwhile); the late result is dropped.
func (c *Controller) Resolve(sub Submission, answer string, err error) bool {
	c.mu.Lock()

	var events []Event
	current := c.pending != nil && c.pending.Seq == sub.Seq

	if current {
		text := answer
		switch {
		case err != nil:
			text = c.cfg.ErrorPrefix + err.Error()
		case answer == "":
			text = c.cfg.FallbackText
		}

		if i := c.indexLocked(sub.PlaceholderID); i >= 0 {
			c.transcript[i].Text = text
			c.transcript[i].Pending = false
			events = append(events, Event{Kind: EventUpdated, Message: c.transcript[i]})
		}
		c.pending = nil
	}

	// a newer submission keeps the input disabled until it resolves itself
	if c.pending == nil {
		c.enabled = true
		c.focused = true
		events = append(events, Event{Kind: EventInputState, Enabled: true})
	}
	c.mu.Unlock()

	l := log.Debug().Str("component", "widget").Uint64("seq", sub.Seq)
	if err != nil {
		l = l.AnErr("request_err", err)
	}
	if !current {
		l.Msg("late submission discarded")
	} else {
		l.Msg("submission resolved")
	}

	c.emit(events)
	return current
}

// Clear drops the transcript back to the greeting. A pending submission is
// forgotten so its response cannot land in the fresh transcript.
func (c *Controller) Clear() error {
	if !c.cfg.AllowClear {
		return ErrClearDisabled
	}

	c.mu.Lock()
	events := c.reset()
	c.mu.Unlock()

	c.emit(events)
	return nil
}

func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *Controller) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

func (c *Controller) Pending() (Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Submission{}, false
	}
	return *c.pending, true
}

func (c *Controller) Config() Config {
	return c.cfg
}

// ------------------------------------------------------------

func (c *Controller) reset() []Event {
	c.transcript = nil
	c.pending = nil
	c.draft = ""
	greeting := c.appendLocked(c.cfg.Greeting, SenderBot, false)
	c.enabled = true
	c.focused = true

	return []Event{
		{Kind: EventCleared},
		{Kind: EventAppended, Message: greeting},
		{Kind: EventInputState, Enabled: true},
	}
}

func (c *Controller) appendLocked(text string, sender Sender, pending bool) Message {
	c.nextID++
	m := Message{ID: c.nextID, Text: text, Sender: sender, Pending: pending}
	c.transcript = append(c.transcript, m)
	return m
}

func (c *Controller) indexLocked(id int) int {
	for i := range c.transcript {
		if c.transcript[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) emit(events []Event) {
	c.mu.Lock()
	observers := make([]func(Event), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, ev := range events {
		for _, fn := range observers {
			fn(ev)
		}
	}
}
