package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mockmate/interview-coach-server/internal/domain"
)

func newTestSession(id string) *domain.Session {
	return &domain.Session{
		SessionID:     id,
		UserName:      "Alex",
		JobRole:       "SDE Intern",
		InterviewType: "behavioral",
		CreatedAt:     time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Questions: []domain.Question{
			{ID: "q-1", Question: "Tell me about yourself.", Category: "behavioral", Difficulty: "easy"},
		},
		CurrentIndex: 0,
		Answers:      []domain.AnsweredItem{},
	}
}

func TestFileLoadAll_InitializesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sessions.json")
	store := NewSessionFileRepository(path)

	sessions, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("LoadAll() returned %d sessions, want 0", len(sessions))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("store file was not initialized: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("initialized store = %q, want %q", data, "{}")
	}
}

func TestFileLoadAll_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}
	store := NewSessionFileRepository(path)

	sessions, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("LoadAll() returned %d sessions, want 0", len(sessions))
	}
}

func TestFileLoadAll_CorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write store: %v", err)
	}
	store := NewSessionFileRepository(path)

	_, err := store.LoadAll(context.Background())
	if !errors.Is(err, ErrStoreCorrupt) {
		t.Errorf("LoadAll() error = %v, want ErrStoreCorrupt", err)
	}
}

func TestFileSaveAll_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := NewSessionFileRepository(path)
	ctx := context.Background()

	want := newTestSession("s-1")
	if err := store.SaveAll(ctx, map[string]*domain.Session{"s-1": want}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	sessions, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	got, ok := sessions["s-1"]
	if !ok {
		t.Fatal("saved session not found after reload")
	}
	if got.UserName != want.UserName || got.JobRole != want.JobRole {
		t.Errorf("reloaded session = %+v, want %+v", got, want)
	}
	if len(got.Questions) != 1 || got.Questions[0].ID != "q-1" {
		t.Errorf("reloaded questions = %+v, want %+v", got.Questions, want.Questions)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("reloaded created_at = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestFileSaveAll_RewritesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := NewSessionFileRepository(path)
	ctx := context.Background()

	full := map[string]*domain.Session{
		"s-1": newTestSession("s-1"),
		"s-2": newTestSession("s-2"),
	}
	if err := store.SaveAll(ctx, full); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	// Saving a smaller snapshot must replace the document, not merge into it.
	if err := store.SaveAll(ctx, map[string]*domain.Session{"s-2": newTestSession("s-2")}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	sessions, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("store holds %d sessions after rewrite, want 1", len(sessions))
	}
	if _, ok := sessions["s-1"]; ok {
		t.Error("s-1 survived a full rewrite that excluded it")
	}
}
