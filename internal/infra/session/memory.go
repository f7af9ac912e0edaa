package session

import (
	"context"
	"sync"

	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore is the default session backend: a mutex-guarded map keyed by
// Telegram ID. A process restart drops every in-flight conversation, which
// is the documented behavior for this bot.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]model.Session)}
}

func (m *MemoryStore) Get(ctx context.Context, tgID int64) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[tgID]
	if !ok {
		return nil, nil
	}
	cp := sess
	return &cp, nil
}

func (m *MemoryStore) Set(ctx context.Context, tgID int64, sess *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tgID] = *sess
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tgID)
	return nil
}
