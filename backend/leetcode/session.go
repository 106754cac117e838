package leetcode

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Session remembers the LeetCode username chosen by each user between runs.
type Session interface {
	Username(ctx context.Context, userID uuid.UUID) (string, error)
	SetUsername(ctx context.Context, userID uuid.UUID, username string) error
}

// MemorySession keeps usernames for the life of the process.
type MemorySession struct {
	mu    sync.RWMutex
	names map[uuid.UUID]string
}

func NewMemorySession() *MemorySession {
	return &MemorySession{names: make(map[uuid.UUID]string)}
}

func (s *MemorySession) Username(_ context.Context, userID uuid.UUID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.names[userID], nil
}

func (s *MemorySession) SetUsername(_ context.Context, userID uuid.UUID, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[userID] = username
	return nil
}
