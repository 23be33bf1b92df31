package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type UsageRepositoryInterface interface {
	Record(ctx context.Context, u *model.AIUsage) error
	Summary(ctx context.Context, ownerID string) (map[string]int, error)
}

type UsageRepository struct {
	DB *sql.DB
}

func (r *UsageRepository) Record(ctx context.Context, u *model.AIUsage) error {
	if err := requireOwner(u.UserID); err != nil {
		return err
	}
	u.ID = newID()
	u.CreatedAt = now()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ai_usage (id, user_id, usage_type, tokens_used, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.UserID, u.UsageType, u.TokensUsed, u.CreatedAt)
	return err
}

// Summary counts generations per usage type.
func (r *UsageRepository) Summary(ctx context.Context, ownerID string) (map[string]int, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT usage_type, COUNT(*) FROM ai_usage WHERE user_id=$1 GROUP BY usage_type`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		out[kind] = count
	}
	return out, rows.Err()
}

var _ UsageRepositoryInterface = (*UsageRepository)(nil)
