// internal/controller/post_controller.go
package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type PostController struct {
	Responder
	PostService  *service.PostService
	AssetService *service.AssetService
}

func (c *PostController) Compose(w http.ResponseWriter, r *http.Request) {
	var body service.ComposeInput
	if !c.Decode(w, r, &body) {
		return
	}
	post, err := c.PostService.Compose(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusAccepted, post)
}

func (c *PostController) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.PostService.ListPosts(r.Context(), PostCriteria(r))
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": posts})
}

func (c *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := c.PostService.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *PostController) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.PostService.ListAccounts(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": accounts})
}

func (c *PostController) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	var body service.AccountInput
	if !c.Decode(w, r, &body) {
		return
	}
	account, err := c.PostService.ConnectAccount(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, account)
}

func (c *PostController) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	if err := c.PostService.DisconnectAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *PostController) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := c.AssetService.ListAssets(r.Context())
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, map[string]any{"data": assets})
}

func (c *PostController) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var body service.AssetInput
	if !c.Decode(w, r, &body) {
		return
	}
	asset, err := c.AssetService.RegisterAsset(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, asset)
}

func (c *PostController) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := c.AssetService.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		c.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
