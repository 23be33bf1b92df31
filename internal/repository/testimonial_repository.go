package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type TestimonialRepositoryInterface interface {
	List(ctx context.Context, order Order) ([]*model.Testimonial, error)
	ListApproved(ctx context.Context) ([]*model.Testimonial, error)
	Create(ctx context.Context, t *model.Testimonial) error
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TestimonialRepository struct {
	DB *sql.DB
}

const testimonialColumns = `id, user_id, name, COALESCE(title, ''), COALESCE(company, ''), content,
	COALESCE(rating, 5), COALESCE(is_approved, false), created_at`

func (r *TestimonialRepository) List(ctx context.Context, order Order) ([]*model.Testimonial, error) {
	orderBy, err := order.clause("created_at", "created_at", "rating")
	if err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+testimonialColumns+` FROM testimonials`+orderBy)
}

func (r *TestimonialRepository) ListApproved(ctx context.Context) ([]*model.Testimonial, error) {
	return r.query(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE is_approved = true ORDER BY created_at DESC`)
}

func (r *TestimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	t.ID = newID()
	t.CreatedAt = now()
	query := `
		INSERT INTO testimonials (id, user_id, name, title, company, content, rating, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.UserID, t.Name, t.Title, t.Company, t.Content, t.Rating, t.IsApproved, t.CreatedAt)
	return err
}

func (r *TestimonialRepository) Approve(ctx context.Context, id string) error {
	if err := checkID("testimonial", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE testimonials SET is_approved = true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "testimonial", id)
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	if err := checkID("testimonial", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM testimonials WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOne(res, "testimonial", id)
}

func (r *TestimonialRepository) query(ctx context.Context, query string, args ...any) ([]*model.Testimonial, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Testimonial{}
	for rows.Next() {
		var t model.Testimonial
		var userID sql.NullString
		if err := rows.Scan(&t.ID, &userID, &t.Name, &t.Title, &t.Company, &t.Content, &t.Rating, &t.IsApproved, &t.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			t.UserID = &userID.String
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

var _ TestimonialRepositoryInterface = (*TestimonialRepository)(nil)
