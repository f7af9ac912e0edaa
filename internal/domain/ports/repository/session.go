package repository

import (
	"context"

	"crystal-petrol-bot/internal/domain/model"
)

// SessionStore is the port for per-user conversation state. Implementations
// may keep state in process memory (the default) or in Redis; either way the
// store is injected into the conversation engine, never reached as a global.
type SessionStore interface {
	// Get returns (nil, nil) when the user has no session yet.
	Get(ctx context.Context, tgID int64) (*model.Session, error)
	Set(ctx context.Context, tgID int64, sess *model.Session) error
	Clear(ctx context.Context, tgID int64) error
}
