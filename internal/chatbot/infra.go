package chatbot

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS exchanges (
	id            UUID PRIMARY KEY,
	prompt        TEXT NOT NULL,
	response      TEXT NOT NULL,
	model         TEXT NOT NULL DEFAULT '',
	finish_reason TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

// EnsureSchema creates the exchanges table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create exchanges table")
}

func (r *repo) SaveExchange(ctx context.Context, ex *Exchange) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, prompt, response, model, finish_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		ex.ID,
		ex.Prompt,
		ex.Response,
		ex.Model,
		ex.FinishReason,
		ex.CreatedAt,
	)
	return errors.Wrap(err, "insert exchange")
}

// NoopRepo is used when no database is configured.
type NoopRepo struct{}

func (NoopRepo) SaveExchange(context.Context, *Exchange) error { return nil }
