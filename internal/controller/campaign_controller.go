// internal/controller/campaign_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type CampaignController struct {
	Responder
	CampaignService *service.CampaignService
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CampaignService.ListCampaigns(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": campaigns})
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body service.CampaignInput
	if !c.Decode(w, r, &body) {
		return
	}
	campaign, err := c.CampaignService.CreateCampaign(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, campaign)
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := c.CampaignService.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var body service.CampaignInput
	if !c.Decode(w, r, &body) {
		return
	}
	campaign, err := c.CampaignService.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := c.CampaignService.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *CampaignController) AttachCreator(w http.ResponseWriter, r *http.Request) {
	var body service.AttachInput
	if !c.Decode(w, r, &body) {
		return
	}
	cc, err := c.CampaignService.AttachCreator(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, cc)
}

func (c *CampaignController) ListCampaignCreators(w http.ResponseWriter, r *http.Request) {
	list, err := c.CampaignService.ListCampaignCreators(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": list})
}

func (c *CampaignController) DetachCreator(w http.ResponseWriter, r *http.Request) {
	if err := c.CampaignService.DetachCreator(r.Context(), chi.URLParam(r, "attachmentID")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
