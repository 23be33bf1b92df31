package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type ContentAssetRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.ContentAsset, error)
	Create(ctx context.Context, a *model.ContentAsset) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ContentAssetRepository struct {
	DB *sql.DB
}

func (r *ContentAssetRepository) ListByOwner(ctx context.Context, ownerID string, order Order) ([]*model.ContentAsset, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	orderBy, err := order.clause("created_at", "created_at", "file_size", "title")
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, user_id, COALESCE(title, ''), file_url, file_type, COALESCE(file_size, 0),
			COALESCE(ai_caption, ''), COALESCE(hashtags, '{}'), COALESCE(status, 'uploaded'), created_at
		FROM content_assets WHERE user_id=$1` + orderBy
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*model.ContentAsset{}
	for rows.Next() {
		var a model.ContentAsset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.FileURL, &a.FileType, &a.FileSize,
			&a.AICaption, pq.Array(&a.Hashtags), &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}

func (r *ContentAssetRepository) Create(ctx context.Context, a *model.ContentAsset) error {
	if err := requireOwner(a.UserID); err != nil {
		return err
	}
	a.ID = newID()
	a.CreatedAt = now()
	if a.Status == "" {
		a.Status = "uploaded"
	}
	query := `
		INSERT INTO content_assets (id, user_id, title, file_url, file_type, file_size, ai_caption, hashtags, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.UserID, a.Title, a.FileURL, a.FileType, a.FileSize,
		a.AICaption, pq.Array(a.Hashtags), a.Status, a.CreatedAt)
	return err
}

func (r *ContentAssetRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("content asset", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM content_assets WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectOne(res, "content asset", id)
}

var _ ContentAssetRepositoryInterface = (*ContentAssetRepository)(nil)
