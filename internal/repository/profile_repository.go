package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type ProfileRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, p *model.Profile) error
	ListAll(ctx context.Context, order Order) ([]*model.Profile, error)
}

type ProfileRepository struct {
	DB *sql.DB
}

const profileColumns = `p.id, p.user_id, COALESCE(u.email, ''), COALESCE(p.username, ''), COALESCE(p.full_name, ''),
	COALESCE(p.avatar_url, ''), COALESCE(p.bio, ''), COALESCE(p.website, ''), COALESCE(p.role, 'user'),
	COALESCE(p.subscription_tier, 'free'), COALESCE(p.subscription_status, 'active'), p.created_at, p.updated_at`

// GetByUserID returns nil, nil when the user has no profile yet.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	if err := requireOwner(userID); err != nil {
		return nil, err
	}
	query := `SELECT ` + profileColumns + ` FROM profiles p LEFT JOIN users u ON u.id = p.user_id WHERE p.user_id=$1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	if err := requireOwner(p.UserID); err != nil {
		return err
	}
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if p.Role == "" {
		p.Role = model.RoleUser
	}
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = model.TierFree
	}
	if p.SubscriptionStatus == "" {
		p.SubscriptionStatus = model.SubscriptionActive
	}
	query := `
		INSERT INTO profiles (id, user_id, username, full_name, avatar_url, bio, website, role,
			subscription_tier, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.UserID, p.Username, p.FullName, p.AvatarURL, p.Bio, p.Website,
		p.Role, p.SubscriptionTier, p.SubscriptionStatus, p.CreatedAt, p.UpdatedAt)
	return err
}

// Update writes the user-editable fields only; role and subscription are
// managed elsewhere.
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	if err := requireOwner(p.UserID); err != nil {
		return err
	}
	p.UpdatedAt = now()
	query := `
		UPDATE profiles
		SET username=$1, full_name=$2, avatar_url=$3, bio=$4, website=$5, updated_at=$6
		WHERE id=$7 AND user_id=$8
	`
	res, err := r.DB.ExecContext(ctx, query, p.Username, p.FullName, p.AvatarURL, p.Bio, p.Website, p.UpdatedAt, p.ID, p.UserID)
	if err != nil {
		return err
	}
	return expectOne(res, "profile", p.ID)
}

// ListAll is the admin view over every profile.
func (r *ProfileRepository) ListAll(ctx context.Context, order Order) ([]*model.Profile, error) {
	orderBy, err := order.clause("created_at", "created_at", "username")
	if err != nil {
		return nil, err
	}
	orderBy = strings.Replace(orderBy, "BY ", "BY p.", 1)
	rows, err := r.DB.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles p LEFT JOIN users u ON u.id = p.user_id`+orderBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*model.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(&p.ID, &p.UserID, &p.Email, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio, &p.Website,
		&p.Role, &p.SubscriptionTier, &p.SubscriptionStatus, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// UserRepositoryInterface backs sign-up and sign-in.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.ID = newID()
	u.CreatedAt = now()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return appErrors.ErrConflict
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email=$1`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err, "user", email)
	}
	return &u, nil
}

var (
	_ ProfileRepositoryInterface = (*ProfileRepository)(nil)
	_ UserRepositoryInterface    = (*UserRepository)(nil)
)
