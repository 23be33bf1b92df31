// internal/controller/creator_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type CreatorController struct {
	Responder
	CreatorService *service.CreatorService
}

func (c *CreatorController) ListCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := c.CreatorService.ListCreators(r.Context(), CreatorCriteria(r))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": creators, "count": len(creators)})
}

func (c *CreatorController) GetCreator(w http.ResponseWriter, r *http.Request) {
	creator, err := c.CreatorService.GetCreator(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, creator)
}
