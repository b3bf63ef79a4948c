// Package state holds per-user conversation modes in process memory.
// Entries live until explicitly cleared; a restart resets every user to idle,
// which is the intended behavior for ephemeral UI state.
package state

import (
	"context"
	"sync"

	"telegram-shopping-list/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*MemoryStateRepo)(nil)

type MemoryStateRepo struct {
	mu     sync.RWMutex
	states map[int64]repository.ConversationState
}

func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{states: make(map[int64]repository.ConversationState)}
}

func (s *MemoryStateRepo) SetState(_ context.Context, tgID int64, state *repository.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[tgID] = *state
	return nil
}

// GetState returns nil when the user has no active mode.
func (s *MemoryStateRepo) GetState(_ context.Context, tgID int64) (*repository.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[tgID]
	if !ok {
		return nil, nil
	}
	cp := st
	return &cp, nil
}

func (s *MemoryStateRepo) ClearState(_ context.Context, tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, tgID)
	return nil
}
