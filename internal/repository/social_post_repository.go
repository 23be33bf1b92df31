package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type SocialPostRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.SocialPost, error)
	Create(ctx context.Context, p *model.SocialPost) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByStatus(ctx context.Context, ownerID string) (map[string]int, error)
}

// PostStatusStore is the narrow view the publish worker needs. The worker
// acts for the system, not for a user, so these calls are not owner scoped.
type PostStatusStore interface {
	GetByID(ctx context.Context, id string) (*model.SocialPost, error)
	UpdateStatus(ctx context.Context, id, status, lastError string) error
}

type SocialPostRepository struct {
	DB *sql.DB
}

const postColumns = `id, user_id, campaign_id, caption, COALESCE(hashtags, '{}'), COALESCE(platforms, '{}'),
	scheduled_for, COALESCE(status, 'scheduled'), COALESCE(last_error, ''), created_at, updated_at`

func (r *SocialPostRepository) Create(ctx context.Context, p *model.SocialPost) error {
	if err := requireOwner(p.UserID); err != nil {
		return err
	}
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if p.CampaignID != nil {
		if err := checkRef("campaign_id", "campaign", *p.CampaignID); err != nil {
			return err
		}
	}
	if p.Status == "" {
		p.Status = model.PostStatusScheduled
	}
	query := `
		INSERT INTO social_posts (id, user_id, campaign_id, caption, hashtags, platforms, scheduled_for, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.UserID, p.CampaignID, p.Caption, pq.Array(p.Hashtags),
		pq.Array(p.Platforms), nullTime(p.ScheduledFor), p.Status, p.CreatedAt, p.UpdatedAt)
	return refOr(err, "campaign_id", "campaign")
}

func (r *SocialPostRepository) ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.SocialPost, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	orderBy, err := order.clause("created_at", "created_at", "scheduled_for")
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+postColumns+` FROM social_posts WHERE user_id=$1`+orderBy, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*model.SocialPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *SocialPostRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("post", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM social_posts WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectOne(res, "post", id)
}

func (r *SocialPostRepository) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT COALESCE(status, 'scheduled'), COUNT(*) FROM social_posts WHERE user_id=$1 GROUP BY 1`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		model.PostStatusScheduled: 0,
		model.PostStatusPublished: 0,
		model.PostStatusFailed:    0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

func (r *SocialPostRepository) GetByID(ctx context.Context, id string) (*model.SocialPost, error) {
	if err := checkID("post", id); err != nil {
		return nil, err
	}
	p, err := scanPost(r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM social_posts WHERE id=$1`, id))
	if err != nil {
		return nil, notFoundOr(err, "post", id)
	}
	return p, nil
}

func (r *SocialPostRepository) UpdateStatus(ctx context.Context, id, status, lastError string) error {
	if err := checkID("post", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE social_posts SET status=$1, last_error=$2, updated_at=$3 WHERE id=$4`,
		status, lastError, now(), id)
	if err != nil {
		return err
	}
	return expectOne(res, "post", id)
}

func scanPost(row rowScanner) (*model.SocialPost, error) {
	var p model.SocialPost
	var campaignID sql.NullString
	var scheduled sql.NullTime
	if err := row.Scan(&p.ID, &p.UserID, &campaignID, &p.Caption, pq.Array(&p.Hashtags), pq.Array(&p.Platforms),
		&scheduled, &p.Status, &p.LastError, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if campaignID.Valid {
		p.CampaignID = &campaignID.String
	}
	p.ScheduledFor = timePtr(scheduled)
	return &p, nil
}

var (
	_ SocialPostRepositoryInterface = (*SocialPostRepository)(nil)
	_ PostStatusStore               = (*SocialPostRepository)(nil)
)
