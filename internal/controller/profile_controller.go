// internal/controller/profile_controller.go
package controller

import (
	"net/http"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type ProfileController struct {
	Responder
	ProfileService  *service.ProfileService
	OverviewService *service.OverviewService
}

func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := c.ProfileService.GetProfile(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, p)
}

func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body service.ProfileInput
	if !c.Decode(w, r, &body) {
		return
	}
	p, err := c.ProfileService.UpdateProfile(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, p)
}

func (c *ProfileController) Upgrade(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tier string `json:"tier"`
	}
	if !c.Decode(w, r, &body) {
		return
	}
	if err := c.ProfileService.Upgrade(r.Context(), body.Tier); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *ProfileController) Overview(w http.ResponseWriter, r *http.Request) {
	o, err := c.OverviewService.Overview(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, o)
}
