// internal/model/profile.go
package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"

	SubscriptionActive = "active"
)

type Profile struct {
	ID                 string    `db:"id" json:"id"`
	UserID             string    `db:"user_id" json:"user_id"`
	Email              string    `json:"email,omitempty"` // joined from users for admin listings
	Username           string    `db:"username" json:"username"`
	FullName           string    `db:"full_name" json:"full_name"`
	AvatarURL          string    `db:"avatar_url" json:"avatar_url"`
	Bio                string    `db:"bio" json:"bio"`
	Website            string    `db:"website" json:"website"`
	Role               string    `db:"role" json:"role"`
	SubscriptionTier   string    `db:"subscription_tier" json:"subscription_tier"`
	SubscriptionStatus string    `db:"subscription_status" json:"subscription_status"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
