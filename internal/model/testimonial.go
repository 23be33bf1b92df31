// internal/model/testimonial.go
package model

import "time"

type Testimonial struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Name       string    `db:"name" json:"name"`
	Title      string    `db:"title" json:"title"`
	Company    string    `db:"company" json:"company"`
	Content    string    `db:"content" json:"content"`
	Rating     int       `db:"rating" json:"rating"`
	IsApproved bool      `db:"is_approved" json:"is_approved"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
