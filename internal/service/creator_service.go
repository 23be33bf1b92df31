// internal/service/creator_service.go
package service

import (
	"context"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

type CreatorService struct {
	CreatorRepo repository.CreatorRepositoryInterface
}

// ListCreators fetches every creator, largest audience first, then narrows
// the list with criteria.
func (s *CreatorService) ListCreators(ctx context.Context, criteria filter.CreatorCriteria) ([]*model.Creator, error) {
	if _, err := auth.CurrentUser(ctx); err != nil {
		return nil, err
	}
	creators, err := s.CreatorRepo.List(ctx, repository.Desc("followers_count"))
	if err != nil {
		return nil, err
	}
	return criteria.Apply(creators), nil
}

func (s *CreatorService) GetCreator(ctx context.Context, id string) (*model.Creator, error) {
	if _, err := auth.CurrentUser(ctx); err != nil {
		return nil, err
	}
	return s.CreatorRepo.GetByID(ctx, id)
}
