// internal/controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type AuthController struct {
	Responder
	AuthService *service.AuthService
}

func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var body service.Credentials
	if !c.Decode(w, r, &body) {
		return
	}
	session, err := c.AuthService.SignUp(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusCreated, session)
}

func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var body service.Credentials
	if !c.Decode(w, r, &body) {
		return
	}
	session, err := c.AuthService.SignIn(r.Context(), body)
	if err != nil {
		c.Error(w, r, err)
		return
	}
	c.JSON(w, http.StatusOK, session)
}
