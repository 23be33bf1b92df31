package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type CampaignCreatorRepositoryInterface interface {
	Attach(ctx context.Context, ownerID string, cc *model.CampaignCreator) error
	ListByCampaign(ctx context.Context, ownerID, campaignID string) ([]*model.CampaignCreator, error)
	Detach(ctx context.Context, ownerID, id string) error
}

type CampaignCreatorRepository struct {
	DB *sql.DB
}

// Attach inserts the join row only when the campaign belongs to ownerID. An
// existing attachment for the same pair is returned unchanged: cc is
// overwritten with the stored row.
func (r *CampaignCreatorRepository) Attach(ctx context.Context, ownerID string, cc *model.CampaignCreator) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("campaign", cc.CampaignID); err != nil {
		return err
	}
	if err := checkRef("creator_id", "creator", cc.CreatorID); err != nil {
		return err
	}
	if cc.Status == "" {
		cc.Status = model.CampaignCreatorPending
	}
	var terms any
	if len(cc.AgreementTerms) > 0 {
		terms = []byte(cc.AgreementTerms)
	}
	query := `
		INSERT INTO campaign_creators (id, campaign_id, creator_id, payment_amount, agreement_terms, status, created_at)
		SELECT $1, c.id, $3, $4, $5, $6, $7
		FROM campaigns c
		WHERE c.id = $2 AND c.user_id = $8
		ON CONFLICT (campaign_id, creator_id) DO UPDATE SET campaign_id = EXCLUDED.campaign_id
		RETURNING ` + campaignCreatorColumns + `
	`
	stored, err := scanCampaignCreator(r.DB.QueryRowContext(ctx, query, newID(), cc.CampaignID, cc.CreatorID,
		cc.PaymentAmount, terms, cc.Status, now(), ownerID))
	if err != nil {
		return refOr(notFoundOr(err, "campaign", cc.CampaignID), "creator_id", "creator")
	}
	*cc = *stored
	return nil
}

func (r *CampaignCreatorRepository) ListByCampaign(ctx context.Context, ownerID, campaignID string) ([]*model.CampaignCreator, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := checkID("campaign", campaignID); err != nil {
		return nil, err
	}
	query := `
		SELECT ` + joinedCampaignCreatorColumns + `
		FROM campaign_creators cc
		JOIN campaigns c ON c.id = cc.campaign_id
		WHERE cc.campaign_id = $1 AND c.user_id = $2
		ORDER BY cc.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.CampaignCreator{}
	for rows.Next() {
		cc, err := scanCampaignCreator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *CampaignCreatorRepository) Detach(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := checkID("campaign creator", id); err != nil {
		return err
	}
	query := `
		DELETE FROM campaign_creators cc
		USING campaigns c
		WHERE cc.id = $1 AND cc.campaign_id = c.id AND c.user_id = $2
	`
	res, err := r.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	return expectOne(res, "campaign creator", id)
}

const campaignCreatorColumns = `id, campaign_id, creator_id, COALESCE(payment_amount, 0), agreement_terms,
	COALESCE(status, 'pending'), created_at`

const joinedCampaignCreatorColumns = `cc.id, cc.campaign_id, cc.creator_id, COALESCE(cc.payment_amount, 0), cc.agreement_terms,
	COALESCE(cc.status, 'pending'), cc.created_at`

func scanCampaignCreator(row rowScanner) (*model.CampaignCreator, error) {
	var cc model.CampaignCreator
	var terms []byte
	if err := row.Scan(&cc.ID, &cc.CampaignID, &cc.CreatorID, &cc.PaymentAmount, &terms, &cc.Status, &cc.CreatedAt); err != nil {
		return nil, err
	}
	if len(terms) > 0 {
		cc.AgreementTerms = terms
	}
	return &cc, nil
}

var _ CampaignCreatorRepositoryInterface = (*CampaignCreatorRepository)(nil)
