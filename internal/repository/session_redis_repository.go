package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mockmate/interview-coach-server/internal/domain"

	"github.com/redis/go-redis/v9"
)

const sessionsKey = "interview:sessions"

type sessionRedisRepository struct {
	client *redis.Client
}

// NewSessionRedisRepository keeps the full session mapping as one JSON value
// under a single key. SET replaces the value atomically, which preserves the
// whole-document rewrite semantics of the store contract.
func NewSessionRedisRepository(client *redis.Client) domain.SessionStore {
	return &sessionRedisRepository{client: client}
}

func (r *sessionRedisRepository) LoadAll(ctx context.Context) (map[string]*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return map[string]*domain.Session{}, nil
		}
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}

	if data == "" {
		return map[string]*domain.Session{}, nil
	}

	sessions := map[string]*domain.Session{}
	if err := json.Unmarshal([]byte(data), &sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreCorrupt, err)
	}

	return sessions, nil
}

func (r *sessionRedisRepository) SaveAll(ctx context.Context, sessions map[string]*domain.Session) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode session store: %w", err)
	}
	if err := r.client.Set(ctx, sessionsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	return nil
}
