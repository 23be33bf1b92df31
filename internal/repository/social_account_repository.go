package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type SocialAccountRepositoryInterface interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*model.SocialAccount, error)
	Create(ctx context.Context, a *model.SocialAccount) error
	Delete(ctx context.Context, ownerID, id string) error
}

type SocialAccountRepository struct {
	DB *sql.DB
}

func (r *SocialAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.SocialAccount, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	query := `
		SELECT id, user_id, platform, account_handle, COALESCE(is_active, true), created_at
		FROM social_accounts WHERE user_id=$1 ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*model.SocialAccount{}
	for rows.Next() {
		var a model.SocialAccount
		if err := rows.Scan(&a.ID, &a.UserID, &a.Platform, &a.AccountHandle, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}

func (r *SocialAccountRepository) Create(ctx context.Context, a *model.SocialAccount) error {
	if err := requireOwner(a.UserID); err != nil {
		return err
	}
	a.ID = newID()
	a.CreatedAt = now()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO social_accounts (id, user_id, platform, account_handle, is_active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.UserID, a.Platform, a.AccountHandle, a.IsActive, a.CreatedAt)
	return err
}

func (r *SocialAccountRepository) Delete(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("social account", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM social_accounts WHERE id=$1 AND user_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectOne(res, "social account", id)
}

var _ SocialAccountRepositoryInterface = (*SocialAccountRepository)(nil)
