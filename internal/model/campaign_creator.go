// internal/model/campaign_creator.go
package model

import (
	"encoding/json"
	"time"
)

const (
	CampaignCreatorPending  = "pending"
	CampaignCreatorAccepted = "accepted"
	CampaignCreatorDeclined = "declined"
)

// CampaignCreator attaches a creator to a campaign.
type CampaignCreator struct {
	ID             string          `db:"id" json:"id"`
	CampaignID     string          `db:"campaign_id" json:"campaign_id"`
	CreatorID      string          `db:"creator_id" json:"creator_id"`
	PaymentAmount  float64         `db:"payment_amount" json:"payment_amount"`
	AgreementTerms json.RawMessage `db:"agreement_terms" json:"agreement_terms,omitempty"`
	Status         string          `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
