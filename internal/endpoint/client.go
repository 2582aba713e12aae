package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DefaultPath = "/chatbot"

// Client talks to the chat endpoint: one POST per prompt.
type Client struct {
	baseURL string
	path    string
	client  *http.Client
	timeout *time.Duration
}

type Option func(*Client)

func WithPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.path = "/" + strings.TrimLeft(path, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero means no limit. It applies to a
// private copy of the HTTP client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = &d
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    DefaultPath,
		client:  &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout != nil {
		hc := *c.client
		hc.Timeout = *c.timeout
		c.client = &hc
	}
	return c
}

type request struct {
	Prompt string `json:"prompt"`
}

type response struct {
	Response string `json:"response"`
}

func (c *Client) URL() string {
	return c.baseURL + c.path
}

// Ask posts the prompt and returns the "response" field. The HTTP status is
// not inspected: the server reports its own failures inside that field. A
// body that is not JSON is an error.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	b, err := json.Marshal(request{Prompt: prompt})
	if err != nil {
		return "", errors.Wrap(err, "encode prompt")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(b))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("component", "endpoint").Str("url", c.URL()).Msg("request failed")
		return "", errors.Wrap(err, "post prompt")
	}
	defer resp.Body.Close()

	log.Debug().
		Str("component", "endpoint").
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("response received")

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrapf(err, "decode response (%s)", resp.Status)
	}

	return out.Response, nil
}
