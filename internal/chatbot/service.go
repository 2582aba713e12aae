package chatbot

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/typhoon-chat/internal/ai"
)

const (
	maxTokens = 900
	// extra calls made when the model stops on the token limit
	maxContinues = 3
)

type service struct {
	repo  Repo
	ai    ai.Completer
	model string
	kb    string

	tokenSet bool
}

type ServiceConfig struct {
	Model         string
	KnowledgeBase string
	TokenSet      bool
}

func NewService(repo Repo, aiClient ai.Completer, cfg ServiceConfig) Service {
	if repo == nil {
		repo = NoopRepo{}
	}
	return &service{
		repo:     repo,
		ai:       aiClient,
		model:    cfg.Model,
		kb:       cfg.KnowledgeBase,
		tokenSet: cfg.TokenSet,
	}
}

func (s *service) Answer(ctx context.Context, prompt string) (string, error) {
	if !s.tokenSet {
		return "", ErrMissingToken
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	id := uuid.NewString()
	logger := log.With().Str("component", "chatbot").Str("exchange_id", id).Logger()
	logger.Info().Int("prompt_len", len(prompt)).Msg("new prompt")

	msgs := s.buildMessages(prompt)

	var (
		parts  []string
		finish string
	)
	for i := 0; i <= maxContinues; i++ {
		c, err := s.ai.Complete(ctx, msgs, maxTokens)
		if err != nil {
			return "", errors.Wrapf(err, "completion %d", i+1)
		}

		reply := CleanPlainText(c.Text)
		if reply != "" {
			parts = append(parts, reply)
		}
		finish = c.FinishReason

		if finish != ai.FinishLength {
			break
		}

		logger.Debug().Int("chunk", i+1).Msg("output cut on length, asking to continue")
		msgs = append(msgs,
			ai.Message{Role: ai.RoleAssistant, Text: reply},
			ai.Message{Role: ai.RoleUser, Text: continuePrompt},
		)
	}

	answer := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if answer == "" {
		answer = msgNoUsableReply
	}
	if finish == ai.FinishLength {
		answer += "\n\n" + msgStillTruncated
	}

	if err := s.repo.SaveExchange(ctx, &Exchange{
		ID:           id,
		Prompt:       prompt,
		Response:     answer,
		Model:        s.model,
		FinishReason: finish,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		logger.Warn().Err(err).Msg("exchange log write failed")
	}

	logger.Info().Int("chunks", len(parts)).Str("finish_reason", finish).Msg("answered")
	return answer, nil
}

func (s *service) buildMessages(prompt string) []ai.Message {
	msgs := []ai.Message{{Role: ai.RoleSystem, Text: SystemPrompt}}
	if s.kb != "" {
		msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Text: knowledgeBaseHeader + s.kb})
	}
	return append(msgs, ai.Message{Role: ai.RoleUser, Text: prompt})
}
