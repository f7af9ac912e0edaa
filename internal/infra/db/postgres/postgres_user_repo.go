package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"crystal-petrol-bot/internal/domain"
	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// Save is an upsert-ignore keyed by telegram_id: a second registration for
// the same identity is a no-op, not an error.
func (r *PostgresUserRepo) Save(ctx context.Context, u *model.UserRecord) error {
	const q = `
INSERT INTO users (telegram_id, full_name, name, phone, region, language)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (telegram_id) DO NOTHING;
`
	_, err := r.pool.Exec(ctx, q, u.TelegramID, u.FullName, u.Name, u.Phone, u.Region, u.Language)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.UserRecord, error) {
	const q = `
SELECT id, telegram_id, COALESCE(full_name,''), COALESCE(name,''),
       COALESCE(phone,''), COALESCE(region,''), COALESCE(language,''), created_at
  FROM users WHERE telegram_id=$1;
`
	var u model.UserRecord
	row := r.pool.QueryRow(ctx, q, tgID)
	if err := row.Scan(&u.ID, &u.TelegramID, &u.FullName, &u.Name, &u.Phone, &u.Region, &u.Language, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) List(ctx context.Context, offset, limit int) ([]model.UserRecord, error) {
	const q = `
SELECT id, telegram_id, COALESCE(full_name,''), COALESCE(name,''),
       COALESCE(phone,''), COALESCE(region,''), COALESCE(language,''), created_at
  FROM users ORDER BY id DESC LIMIT $1 OFFSET $2;
`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []model.UserRecord
	for rows.Next() {
		var u model.UserRecord
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.FullName, &u.Name, &u.Phone, &u.Region, &u.Language, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
