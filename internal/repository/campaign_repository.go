package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.Campaign, error)
	GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByStatus(ctx context.Context, ownerID string) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, user_id, title, COALESCE(description, ''), COALESCE(budget, 0),
	COALESCE(status, 'draft'), start_date, end_date, created_at, updated_at`

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	if err := requireOwner(c.UserID); err != nil {
		return err
	}
	c.ID = newID()
	c.CreatedAt = now()
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	query := `
		INSERT INTO campaigns (id, user_id, title, description, budget, status, start_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.UserID, c.Title, c.Description, c.Budget, c.Status,
		nullTime(c.StartDate), nullTime(c.EndDate), c.CreatedAt)
	return err
}

func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	if err := requireOwner(c.UserID); err != nil {
		return err
	}
	if err := checkID("campaign", c.ID); err != nil {
		return err
	}
	t := now()
	query := `
		UPDATE campaigns
		SET title=$1, description=$2, budget=$3, status=$4, start_date=$5, end_date=$6, updated_at=$7
		WHERE id=$8 AND user_id=$9
	`
	res, err := r.DB.ExecContext(ctx, query, c.Title, c.Description, c.Budget, c.Status,
		nullTime(c.StartDate), nullTime(c.EndDate), t, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if err := expectOne(res, "campaign", c.ID); err != nil {
		return err
	}
	c.UpdatedAt = &t
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("campaign", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectOne(res, "campaign", id)
}

func (r *CampaignRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := checkID("campaign", id); err != nil {
		return nil, err
	}
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1 AND user_id=$2`
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, notFoundOr(err, "campaign", id)
	}
	return c, nil
}

func (r *CampaignRepository) ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.Campaign, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	orderBy, err := order.clause("created_at", "created_at", "title", "budget", "start_date")
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE user_id=$1`+orderBy, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	query := `SELECT COALESCE(status, 'draft'), COUNT(*) FROM campaigns WHERE user_id=$1 GROUP BY 1`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{
		model.CampaignStatusDraft:     0,
		model.CampaignStatusActive:    0,
		model.CampaignStatusPaused:    0,
		model.CampaignStatusCompleted: 0,
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*model.Campaign, error) {
	var c model.Campaign
	var start, end, updated sql.NullTime
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Budget, &c.Status,
		&start, &end, &c.CreatedAt, &updated); err != nil {
		return nil, err
	}
	c.StartDate = timePtr(start)
	c.EndDate = timePtr(end)
	c.UpdatedAt = timePtr(updated)
	return &c, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
