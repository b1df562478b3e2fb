package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/scene-engine/pkg/state"
)

// MockSaveStore is an in-memory SaveStore for tests.
type MockSaveStore struct {
	mu     sync.Mutex
	saves  map[uuid.UUID]*state.GameState
	latest uuid.UUID
}

var _ SaveStore = (*MockSaveStore)(nil)

func NewMockSaveStore() *MockSaveStore {
	return &MockSaveStore{
		saves: make(map[uuid.UUID]*state.GameState),
	}
}

func (s *MockSaveStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MockSaveStore) Save(ctx context.Context, gs *state.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs.UpdatedAt = time.Now().UTC()
	cp := *gs
	s.saves[gs.ID] = &cp
	s.latest = gs.ID
	return nil
}

func (s *MockSaveStore) Load(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.saves[id]
	if !ok {
		return nil, nil
	}
	cp := *gs
	return &cp, nil
}

func (s *MockSaveStore) LoadLatest(ctx context.Context) (*state.GameState, error) {
	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()
	if latest == uuid.Nil {
		return nil, nil
	}
	return s.Load(ctx, latest)
}

func (s *MockSaveStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saves, id)
	if s.latest == id {
		s.latest = uuid.Nil
	}
	return nil
}

func (s *MockSaveStore) Close() error {
	return nil
}
