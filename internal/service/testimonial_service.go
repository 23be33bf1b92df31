// internal/service/testimonial_service.go
package service

import (
	"context"
	"strings"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

type TestimonialService struct {
	TestimonialRepo repository.TestimonialRepositoryInterface
}

type TestimonialInput struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// ListApproved is the public landing page list.
func (s *TestimonialService) ListApproved(ctx context.Context) ([]*model.Testimonial, error) {
	return s.TestimonialRepo.ListApproved(ctx)
}

// Submit stores a testimonial awaiting approval. Anonymous submissions are
// accepted; a signed-in author is recorded.
func (s *TestimonialService) Submit(ctx context.Context, in TestimonialInput) (*model.Testimonial, error) {
	if err := required("name", in.Name, "Please enter your name"); err != nil {
		return nil, err
	}
	if err := required("content", in.Content, "Please enter your testimonial"); err != nil {
		return nil, err
	}
	if in.Rating == 0 {
		in.Rating = 5
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, appErrors.NewValidation("rating", "must be between 1 and 5")
	}
	t := &model.Testimonial{
		Name:    strings.TrimSpace(in.Name),
		Title:   in.Title,
		Company: in.Company,
		Content: strings.TrimSpace(in.Content),
		Rating:  in.Rating,
	}
	if owner, ok := auth.UserIDFromContext(ctx); ok {
		t.UserID = &owner
	}
	if err := s.TestimonialRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
