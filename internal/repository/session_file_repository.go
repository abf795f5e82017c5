package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mockmate/interview-coach-server/internal/domain"
)

var ErrStoreCorrupt = errors.New("session store corrupt")

type sessionFileRepository struct {
	path string
}

// NewSessionFileRepository stores the full session mapping as a single JSON
// document on disk. Every save rewrites the document through a temp file and
// rename, so readers never observe a partial write.
func NewSessionFileRepository(path string) domain.SessionStore {
	return &sessionFileRepository{path: path}
}

func (r *sessionFileRepository) LoadAll(ctx context.Context) (map[string]*domain.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			if initErr := r.initEmpty(); initErr != nil {
				return nil, initErr
			}
			return map[string]*domain.Session{}, nil
		}
		return nil, fmt.Errorf("failed to read session store %s: %w", r.path, err)
	}

	if len(data) == 0 {
		return map[string]*domain.Session{}, nil
	}

	sessions := map[string]*domain.Session{}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupt, r.path, err)
	}

	return sessions, nil
}

func (r *sessionFileRepository) SaveAll(ctx context.Context, sessions map[string]*domain.Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "sessions-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session store: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close session store: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session store %s: %w", r.path, err)
	}

	return nil
}

func (r *sessionFileRepository) initEmpty() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session store directory: %w", err)
	}
	if err := os.WriteFile(r.path, []byte("{}"), 0o644); err != nil {
		return fmt.Errorf("failed to initialize session store %s: %w", r.path, err)
	}
	return nil
}
