package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

// CreatorRepositoryInterface is read-only from the dashboard's side; Seed is
// used by the seeder only.
type CreatorRepositoryInterface interface {
	List(ctx context.Context, order Order) ([]*model.Creator, error)
	GetByID(ctx context.Context, id string) (*model.Creator, error)
}

type CreatorRepository struct {
	DB *sql.DB
}

const creatorColumns = `id, name, handle, platform, COALESCE(followers_count, 0), COALESCE(engagement_rate, 0),
	COALESCE(niche, '{}'), COALESCE(location, ''), COALESCE(contact_email, ''), COALESCE(profile_image_url, ''),
	COALESCE(bio, ''), COALESCE(status, 'available'), created_at`

func (r *CreatorRepository) List(ctx context.Context, order Order) ([]*model.Creator, error) {
	orderBy, err := order.clause("followers_count", "followers_count", "engagement_rate", "name", "created_at")
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+creatorColumns+` FROM creators`+orderBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := []*model.Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}
	return creators, rows.Err()
}

func (r *CreatorRepository) GetByID(ctx context.Context, id string) (*model.Creator, error) {
	if err := checkID("creator", id); err != nil {
		return nil, err
	}
	c, err := scanCreator(r.DB.QueryRowContext(ctx, `SELECT `+creatorColumns+` FROM creators WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err, "creator", id)
	}
	return c, nil
}

// Seed bulk-loads creators with COPY inside one transaction.
func (r *CreatorRepository) Seed(ctx context.Context, creators []*model.Creator) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("creators",
		"id", "name", "handle", "platform", "followers_count", "engagement_rate",
		"niche", "location", "contact_email", "bio", "status", "created_at"))
	if err != nil {
		return 0, fmt.Errorf("prepare copy: %w", err)
	}

	for _, c := range creators {
		if c.ID == "" {
			c.ID = newID()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now()
		}
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Handle, c.Platform, c.FollowersCount, c.EngagementRate,
			pq.Array(c.Niche), c.Location, c.ContactEmail, c.Bio, c.Status, c.CreatedAt); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("copy creator %s: %w", c.Handle, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(creators), nil
}

func scanCreator(row rowScanner) (*model.Creator, error) {
	var c model.Creator
	if err := row.Scan(&c.ID, &c.Name, &c.Handle, &c.Platform, &c.FollowersCount, &c.EngagementRate,
		pq.Array(&c.Niche), &c.Location, &c.ContactEmail, &c.ProfileImageURL, &c.Bio, &c.Status, &c.CreatedAt); err != nil {
		return nil, err
	}
	if c.Niche == nil {
		c.Niche = []string{}
	}
	return &c, nil
}

var _ CreatorRepositoryInterface = (*CreatorRepository)(nil)
