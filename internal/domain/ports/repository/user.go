package repository

import (
	"context"

	"crystal-petrol-bot/internal/domain/model"
)

// UserRepository persists registration records.
type UserRepository interface {
	// Save inserts the record, ignoring the write when a row with the
	// same telegram_id already exists (upsert-ignore).
	Save(ctx context.Context, u *model.UserRecord) error

	// FindByTelegramID returns domain.ErrNotFound when no row exists.
	FindByTelegramID(ctx context.Context, tgID int64) (*model.UserRecord, error)

	// List returns up to limit records ordered newest-first, skipping offset rows.
	List(ctx context.Context, offset, limit int) ([]model.UserRecord, error)

	Count(ctx context.Context) (int, error)
}
