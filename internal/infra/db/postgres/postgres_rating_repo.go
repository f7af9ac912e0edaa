package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"crystal-petrol-bot/internal/domain"
	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/repository"
)

var _ repository.RatingRepository = (*PostgresRatingRepo)(nil)

type PostgresRatingRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRatingRepo(pool *pgxpool.Pool) *PostgresRatingRepo {
	return &PostgresRatingRepo{pool: pool}
}

func (r *PostgresRatingRepo) Save(ctx context.Context, rec *model.RatingRecord) error {
	const q = `INSERT INTO ratings (telegram_id, full_name, stars) VALUES ($1,$2,$3);`
	if _, err := r.pool.Exec(ctx, q, rec.TelegramID, rec.FullName, rec.Stars); err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

func (r *PostgresRatingRepo) Exists(ctx context.Context, tgID int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS(SELECT 1 FROM ratings WHERE telegram_id=$1);`
	if err := r.pool.QueryRow(ctx, q, tgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("rating exists: %w", err)
	}
	return exists, nil
}

func (r *PostgresRatingRepo) AverageStars(ctx context.Context) (float64, error) {
	// AVG over an empty table is NULL, which maps to the no-data sentinel.
	var avg *float64
	const q = `SELECT ROUND(AVG(stars)::numeric, 2)::float8 FROM ratings;`
	if err := r.pool.QueryRow(ctx, q).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average stars: %w", err)
	}
	if avg == nil {
		return 0, domain.ErrNoRatings
	}
	return *avg, nil
}
