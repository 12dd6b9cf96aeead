// Package store persists finalized screening sessions as an append-only
// JSON record file. The core never calls it; callers hand over one snapshot
// per session after the conversation reaches a terminal stage.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentscout/screener/internal/interview"
)

// Record is one persisted candidate snapshot.
type Record struct {
	ID        string                     `json:"id"`
	SessionID string                     `json:"session_id"`
	CreatedAt time.Time                  `json:"created_at"`
	Stage     interview.Stage            `json:"stage"`
	Profile   interview.CandidateProfile `json:"profile"`
	TechStack []string                   `json:"tech_stack,omitempty"`
	Answers   []interview.Answer         `json:"answers,omitempty"`
	Turns     int                        `json:"turns"`
}

// Store appends candidate records to a single JSON file. Access is
// serialized; records are never updated in place.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("store path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	return &Store{path: path}, nil
}

// Append converts the finalized session into a record and writes it.
func (s *Store) Append(st *interview.State) (*Record, error) {
	if st == nil {
		return nil, errors.New("state is required")
	}
	if !st.Stage.Terminal() {
		return nil, fmt.Errorf("session %s is not finalized (stage %s)", st.ID, st.Stage)
	}

	record := &Record{
		ID:        uuid.NewString(),
		SessionID: st.ID,
		CreatedAt: time.Now().UTC(),
		Stage:     st.Stage,
		Profile:   st.Profile,
		TechStack: st.TechStack,
		Answers:   st.Answers,
		Turns:     st.Turns,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}

	records = append(records, record)
	if err := s.write(records); err != nil {
		return nil, err
	}

	return record, nil
}

// All returns every persisted record.
func (s *Store) All() ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read candidate records: %w", err)
	}

	var records []*Record
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse candidate records: %w", err)
		}
	}

	return records, nil
}

func (s *Store) write(records []*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal candidate records: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write candidate records: %w", err)
	}

	return os.Rename(tmp, s.path)
}
