// internal/service/campaign_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo        repository.CampaignRepositoryInterface
	CampaignCreatorRepo repository.CampaignCreatorRepositoryInterface
	Logger              *zap.Logger
}

// CampaignInput is the campaign form. Budget and dates arrive as typed
// text.
type CampaignInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      string `json:"budget"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (in CampaignInput) apply(c *model.Campaign) error {
	if err := required("title", in.Title, "Please enter a campaign title"); err != nil {
		return err
	}
	budget, err := parseAmount("budget", in.Budget)
	if err != nil {
		return err
	}
	start, err := parseDate("start_date", in.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", in.EndDate)
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return appErrors.NewValidation("end_date", "must not be before start_date")
	}
	if in.Status != "" && !model.ValidCampaignStatus(in.Status) {
		return appErrors.NewValidation("status", "unknown campaign status")
	}

	c.Title = strings.TrimSpace(in.Title)
	c.Description = in.Description
	c.Budget = budget
	c.StartDate = start
	c.EndDate = end
	if in.Status != "" {
		c.Status = in.Status
	}
	return nil
}

func (s *CampaignService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// ListCampaigns returns the caller's campaigns, newest first.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.CampaignRepo.ListByOwner(ctx, owner, repository.Desc("created_at"))
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.CampaignRepo.GetByID(ctx, owner, id)
}

// CreateCampaign always starts the campaign as a draft.
func (s *CampaignService) CreateCampaign(ctx context.Context, in CampaignInput) (*model.Campaign, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	in.Status = ""
	c := &model.Campaign{UserID: owner, Status: model.CampaignStatusDraft}
	if err := in.apply(c); err != nil {
		return nil, err
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger().Info("campaign created", zap.String("campaign_id", c.ID), zap.String("owner_id", owner))
	return c, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, in CampaignInput) (*model.Campaign, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.CampaignRepo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	updated := *c
	if err := in.apply(&updated); err != nil {
		return nil, err
	}
	if err := s.CampaignRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.CampaignRepo.Delete(ctx, owner, id); err != nil {
		return err
	}
	s.logger().Info("campaign deleted", zap.String("campaign_id", id), zap.String("owner_id", owner))
	return nil
}

// AttachInput adds a creator to one of the caller's campaigns.
type AttachInput struct {
	CreatorID      string          `json:"creator_id"`
	PaymentAmount  float64         `json:"payment_amount"`
	AgreementTerms json.RawMessage `json:"agreement_terms,omitempty"`
}

func (s *CampaignService) AttachCreator(ctx context.Context, campaignID string, in AttachInput) (*model.CampaignCreator, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := required("creator_id", in.CreatorID, "Please choose a creator"); err != nil {
		return nil, err
	}
	if err := required("campaign_id", campaignID, "Please choose a campaign"); err != nil {
		return nil, err
	}
	if err := checkAmount("payment_amount", in.PaymentAmount); err != nil {
		return nil, err
	}
	if len(in.AgreementTerms) > 0 && !json.Valid(in.AgreementTerms) {
		return nil, appErrors.NewValidation("agreement_terms", "must be valid JSON")
	}
	cc := &model.CampaignCreator{
		CampaignID:     campaignID,
		CreatorID:      in.CreatorID,
		PaymentAmount:  in.PaymentAmount,
		AgreementTerms: in.AgreementTerms,
		Status:         model.CampaignCreatorPending,
	}
	if err := s.CampaignCreatorRepo.Attach(ctx, owner, cc); err != nil {
		return nil, err
	}
	return cc, nil
}

func (s *CampaignService) ListCampaignCreators(ctx context.Context, campaignID string) ([]*model.CampaignCreator, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.CampaignCreatorRepo.ListByCampaign(ctx, owner, campaignID)
}

func (s *CampaignService) DetachCreator(ctx context.Context, attachmentID string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.CampaignCreatorRepo.Detach(ctx, owner, attachmentID)
}
