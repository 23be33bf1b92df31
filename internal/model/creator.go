// internal/model/creator.go
package model

import "time"

const (
	CreatorAvailable   = "available"
	CreatorBusy        = "busy"
	CreatorUnavailable = "unavailable"
)

// Creator platforms as stored in the creators table.
const (
	CreatorPlatformInstagram = "Instagram"
	CreatorPlatformYouTube   = "YouTube"
	CreatorPlatformTikTok    = "TikTok"
	CreatorPlatformLinkedIn  = "LinkedIn"
	CreatorPlatformTwitter   = "Twitter"
)

var CreatorPlatforms = []string{
	CreatorPlatformInstagram,
	CreatorPlatformYouTube,
	CreatorPlatformTikTok,
	CreatorPlatformLinkedIn,
	CreatorPlatformTwitter,
}

type Creator struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Handle          string    `db:"handle" json:"handle"`
	Platform        string    `db:"platform" json:"platform"`
	FollowersCount  int64     `db:"followers_count" json:"followers_count"`
	EngagementRate  float64   `db:"engagement_rate" json:"engagement_rate"`
	Niche           []string  `db:"niche" json:"niche"`
	Location        string    `db:"location" json:"location"`
	ContactEmail    string    `db:"contact_email" json:"contact_email"`
	ProfileImageURL string    `db:"profile_image_url" json:"profile_image_url"`
	Bio             string    `db:"bio" json:"bio"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
