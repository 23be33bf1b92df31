// internal/model/content_asset.go
package model

import "time"

const (
	AssetTypeImage = "image"
	AssetTypeVideo = "video"
)

type ContentAsset struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	FileURL   string    `db:"file_url" json:"file_url"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	AICaption string    `db:"ai_caption" json:"ai_caption,omitempty"`
	Hashtags  []string  `db:"hashtags" json:"hashtags"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
