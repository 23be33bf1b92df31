// internal/controller/admin_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type AdminController struct {
	Responder
	AdminService       *service.AdminService
	TestimonialService *service.TestimonialService
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.AdminService.ListUsers(r.Context(), UserCriteria(r))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": users})
}

func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.AdminService.Stats(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, stats)
}

func (c *AdminController) Testimonials(w http.ResponseWriter, r *http.Request) {
	split, err := c.AdminService.Testimonials(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, split)
}

func (c *AdminController) ApproveTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := c.AdminService.ApproveTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AdminController) RejectTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := c.AdminService.RejectTestimonial(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublicTestimonials is the unauthenticated landing page list.
func (c *AdminController) PublicTestimonials(w http.ResponseWriter, r *http.Request) {
	list, err := c.TestimonialService.ListApproved(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": list})
}

func (c *AdminController) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	var body service.TestimonialInput
	if !c.Decode(w, r, &body) {
		return
	}
	t, err := c.TestimonialService.Submit(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, t)
}
