package ai

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://router.huggingface.co/v1"
	DefaultModel   = "google/gemma-2-2b-it"

	temperature = 0.35
	topP        = 0.9
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient speaks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(oc),
		model:  model,
	}
}

func (c *OpenAIClient) Model() string {
	return c.model
}

func (c *OpenAIClient) Complete(
	ctx context.Context,
	history []Message,
	maxTokens int,
) (Completion, error) {

	msgs := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Text,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
	if err != nil {
		log.Warn().Err(err).Str("component", "ai").Str("model", c.model).Msg("chat completion failed")
		return Completion{}, errors.Wrap(err, "chat completion")
	}

	if len(resp.Choices) == 0 {
		log.Warn().Str("component", "ai").Str("model", c.model).Msg("empty choices")
		return Completion{}, nil
	}

	choice := resp.Choices[0]

	log.Debug().
		Str("component", "ai").
		Str("finish_reason", string(choice.FinishReason)).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion")

	return Completion{
		Text:         strings.TrimSpace(choice.Message.Content),
		FinishReason: string(choice.FinishReason),
	}, nil
}
