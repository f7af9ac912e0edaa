package repository

import (
	"context"

	"crystal-petrol-bot/internal/domain/model"
)

// RatingRepository persists service ratings, append-only.
type RatingRepository interface {
	Save(ctx context.Context, r *model.RatingRecord) error

	// Exists reports whether the identity has already submitted a rating.
	Exists(ctx context.Context, tgID int64) (bool, error)

	// AverageStars returns the mean rating rounded to two decimal places.
	// It returns domain.ErrNoRatings when the table is empty.
	AverageStars(ctx context.Context) (float64, error)
}
