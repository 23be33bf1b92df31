// internal/model/social_post.go
package model

import "time"

const (
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusFailed    = "failed"
)

type SocialPost struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	CampaignID   *string    `db:"campaign_id" json:"campaign_id,omitempty"`
	Caption      string     `db:"caption" json:"caption"`
	Hashtags     []string   `db:"hashtags" json:"hashtags"`
	Platforms    []string   `db:"platforms" json:"platforms"`
	ScheduledFor *time.Time `db:"scheduled_for" json:"scheduled_for,omitempty"`
	Status       string     `db:"status" json:"status"`
	LastError    string     `db:"last_error" json:"last_error,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// SocialAccount is a platform account the owner connected for publishing.
type SocialAccount struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Platform      string    `db:"platform" json:"platform"`
	AccountHandle string    `db:"account_handle" json:"account_handle"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
