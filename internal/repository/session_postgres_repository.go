package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mockmate/interview-coach-server/internal/domain"
)

type sessionPostgresRepository struct {
	db *sql.DB
}

// NewSessionPostgresRepository keeps the full session mapping as a single
// jsonb document in a one-row table; the upsert replaces the document
// wholesale on every save.
func NewSessionPostgresRepository(db *sql.DB) (domain.SessionStore, error) {
	query := `
		CREATE TABLE IF NOT EXISTS session_store (
			id INT PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL
		)
	`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to prepare session store table: %w", err)
	}

	return &sessionPostgresRepository{db: db}, nil
}

func (r *sessionPostgresRepository) LoadAll(ctx context.Context) (map[string]*domain.Session, error) {
	query := `SELECT data FROM session_store WHERE id = 1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return map[string]*domain.Session{}, nil
		}
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}

	sessions := map[string]*domain.Session{}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}

	return sessions, nil
}

func (r *sessionPostgresRepository) SaveAll(ctx context.Context, sessions map[string]*domain.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode session store: %w", err)
	}

	query := `
		INSERT INTO session_store (id, data)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`
	if _, err := r.db.ExecContext(ctx, query, data); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}

	return nil
}
