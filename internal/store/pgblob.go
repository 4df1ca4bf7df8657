package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGBlob persists the session snapshot as one jsonb row. The single
// row keeps the blob semantics of the file backend: every save is a
// full replacement.
type PGBlob struct {
	pool *pgxpool.Pool
}

func NewPGBlob(ctx context.Context, dsn string) (*PGBlob, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	b := &PGBlob{pool: pool}
	if err := b.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *PGBlob) ensureSchema(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bingo_state (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure bingo_state: %w", err)
	}
	return nil
}

func (b *PGBlob) Load(ctx context.Context) (map[string]*Session, error) {
	var raw []byte
	err := b.pool.QueryRow(ctx, `SELECT data FROM bingo_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return map[string]*Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load bingo_state: %w", err)
	}
	sessions := map[string]*Session{}
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return nil, fmt.Errorf("decode bingo_state: %w", err)
	}
	return sessions, nil
}

func (b *PGBlob) Save(ctx context.Context, sessions map[string]*Session) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	_, err = b.pool.Exec(ctx, `
		INSERT INTO bingo_state (id, data, updated_at) VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, raw)
	if err != nil {
		return fmt.Errorf("save bingo_state: %w", err)
	}
	return nil
}

func (b *PGBlob) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
