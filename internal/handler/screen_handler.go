// internal/handler/screen_handler.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/creatorhub-backend/internal/controller"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

// ScreenHandler holds the dependencies for the stateful screen endpoints.
type ScreenHandler struct {
	controller.Responder
	Service *service.ScreenService
}

func NewScreenHandler(svc *service.ScreenService, rs controller.Responder) *ScreenHandler {
	return &ScreenHandler{Responder: rs, Service: svc}
}

// OpenScreenHandler opens a screen of the requested kind and runs its
// mount fetch.
func (h *ScreenHandler) OpenScreenHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
	}
	if !h.Decode(w, r, &body) {
		return
	}
	view, err := h.Service.Open(r.Context(), body.Kind)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, view)
}

func (h *ScreenHandler) GetScreenHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, view)
}

func (h *ScreenHandler) RefreshScreenHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.Refresh(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, view)
}

func (h *ScreenHandler) CloseScreenHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScreenHandler) CreatorsHandler(w http.ResponseWriter, r *http.Request) {
	creators, err := h.Service.FilterCreators(r.Context(), chi.URLParam(r, "id"), controller.CreatorCriteria(r))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"data": creators, "count": len(creators)})
}

func (h *ScreenHandler) CampaignsHandler(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Service.FilterCampaigns(r.Context(), chi.URLParam(r, "id"), controller.CampaignCriteria(r))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"data": campaigns, "count": len(campaigns)})
}

func (h *ScreenHandler) UsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.FilterUsers(r.Context(), chi.URLParam(r, "id"), controller.UserCriteria(r))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"data": users, "count": len(users)})
}

func (h *ScreenHandler) ShortlistHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CampaignID string `json:"campaign_id"`
		service.AttachInput
	}
	if !h.Decode(w, r, &body) {
		return
	}
	cc, err := h.Service.Shortlist(r.Context(), chi.URLParam(r, "id"), body.CampaignID, body.AttachInput)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, cc)
}

func (h *ScreenHandler) ApproveTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.ApproveTestimonial(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "testimonialID"))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, view)
}

func (h *ScreenHandler) RejectTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.RejectTestimonial(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "testimonialID"))
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusOK, view)
}

func (h *ScreenHandler) CaptionHandler(w http.ResponseWriter, r *http.Request) {
	var body generator.CaptionRequest
	if !h.Decode(w, r, &body) {
		return
	}
	item, err := h.Service.GenerateCaption(r.Context(), chi.URLParam(r, "id"), body)
	h.item(w, r, item, err)
}

func (h *ScreenHandler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	var body generator.CaptionRequest
	if !h.Decode(w, r, &body) {
		return
	}
	item, err := h.Service.RegenerateCaption(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), body)
	h.item(w, r, item, err)
}

func (h *ScreenHandler) PosterHandler(w http.ResponseWriter, r *http.Request) {
	var body generator.ProductRequest
	if !h.Decode(w, r, &body) {
		return
	}
	item, err := h.Service.GeneratePoster(r.Context(), chi.URLParam(r, "id"), body)
	h.item(w, r, item, err)
}

func (h *ScreenHandler) ProductCaptionHandler(w http.ResponseWriter, r *http.Request) {
	var body generator.ProductRequest
	if !h.Decode(w, r, &body) {
		return
	}
	item, err := h.Service.GenerateProductCaption(r.Context(), chi.URLParam(r, "id"), body)
	h.item(w, r, item, err)
}

func (h *ScreenHandler) VideoEditHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.EditVideo(r.Context(), chi.URLParam(r, "id"))
	h.item(w, r, item, err)
}

func (h *ScreenHandler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		h.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ScreenHandler) MessageHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if !h.Decode(w, r, &body) {
		return
	}
	msg, err := h.Service.Send(r.Context(), chi.URLParam(r, "id"), body.Content)
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, msg)
}

func (h *ScreenHandler) item(w http.ResponseWriter, r *http.Request, item any, err error) {
	if err != nil {
		h.Error(w, r, err)
		return
	}
	h.JSON(w, http.StatusCreated, item)
}
