package usecase

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("editor session not found")

// Sessions tracks the open editors, one per page.
type Sessions struct {
	mu      sync.RWMutex
	editors map[uuid.UUID]*Editor
	backend Backend
	repo    SnapshotsRepo
	opts    Options
}

func NewSessions(b Backend, repo SnapshotsRepo, opts Options) *Sessions {
	return &Sessions{editors: map[uuid.UUID]*Editor{}, backend: b, repo: repo, opts: opts}
}

func (s *Sessions) Open() *Editor {
	e := NewEditor(s.backend, s.repo, s.opts)
	s.mu.Lock()
	s.editors[e.ID()] = e
	s.mu.Unlock()
	return e
}

func (s *Sessions) Get(id uuid.UUID) (*Editor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.editors[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *Sessions) Close(id uuid.UUID) {
	s.mu.Lock()
	delete(s.editors, id)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editors)
}
