// internal/model/generated.go
package model

import "time"

const (
	GeneratedCaption = "caption"
	GeneratedPoster  = "poster"
	GeneratedVideo   = "video"
)

// GeneratedItem is one result held in a screen's generation list. It is
// never persisted.
type GeneratedItem struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Platform   string    `json:"platform,omitempty"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	Hashtags   []string  `json:"hashtags,omitempty"`
	Engagement string    `json:"engagement,omitempty"`
	Tone       string    `json:"tone,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatMessage is one entry of an assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// AIUsage records one generation against the owner's account.
type AIUsage struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	UsageType  string    `db:"usage_type" json:"usage_type"`
	TokensUsed int       `db:"tokens_used" json:"tokens_used"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
