// internal/service/asset_service.go
package service

import (
	"context"
	"strings"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

// AssetService records content lab uploads. File bytes live in external
// storage; only metadata is kept here.
type AssetService struct {
	AssetRepo repository.ContentAssetRepositoryInterface
}

type AssetInput struct {
	Title    string `json:"title"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

func (s *AssetService) ListAssets(ctx context.Context) ([]*model.ContentAsset, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.AssetRepo.ListByOwner(ctx, owner, repository.Desc("created_at"))
}

func (s *AssetService) RegisterAsset(ctx context.Context, in AssetInput) (*model.ContentAsset, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := required("file_url", in.FileURL, "Please upload a file"); err != nil {
		return nil, err
	}
	switch in.FileType {
	case model.AssetTypeImage, model.AssetTypeVideo:
	default:
		return nil, appErrors.NewValidation("file_type", "must be image or video")
	}
	if in.FileSize < 0 {
		return nil, appErrors.NewValidation("file_size", "cannot be negative")
	}
	a := &model.ContentAsset{
		UserID:   owner,
		Title:    strings.TrimSpace(in.Title),
		FileURL:  in.FileURL,
		FileType: in.FileType,
		FileSize: in.FileSize,
		Hashtags: []string{},
		Status:   "uploaded",
	}
	if err := s.AssetRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.AssetRepo.Delete(ctx, owner, id)
}
