// internal/controller/respond.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
)

// Responder writes JSON bodies and maps service errors to status codes.
// Controllers and handlers embed it.
type Responder struct {
	Logger *zap.Logger
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON encodes v before committing code, so a value that cannot be encoded
// is reported as a 500 instead of an empty success.
func (rs Responder) JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if v == nil {
		w.WriteHeader(code)
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		rs.logger().Error("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorBody{Error: "internal error"})
		return
	}
	w.WriteHeader(code)
	if _, err := w.Write(append(body, '\n')); err != nil {
		rs.logger().Warn("failed to write response", zap.Error(err))
	}
}

// Decode reads a JSON body into v. It reports false after writing the 4xx
// response itself.
func (rs Responder) Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		rs.JSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
	case errors.Is(err, io.EOF):
		rs.JSON(w, http.StatusBadRequest, errorBody{Error: "request body is empty"})
	default:
		rs.JSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}
	return false
}

// Error writes err with the status its class maps to.
func (rs Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var ve *appErrors.ValidationError
	switch {
	case errors.As(err, &ve):
		rs.JSON(w, http.StatusBadRequest, errorBody{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, appErrors.ErrValidation):
		rs.JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrUnauthenticated):
		rs.JSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrForbidden):
		rs.JSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrNotFound):
		rs.JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrConflict), errors.Is(err, appErrors.ErrBusy):
		rs.JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrGenerationFailed):
		rs.JSON(w, http.StatusBadGateway, errorBody{Error: err.Error()})
	case errors.Is(err, appErrors.ErrNotImplemented):
		rs.JSON(w, http.StatusNotImplemented, errorBody{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		rs.JSON(w, http.StatusGone, errorBody{Error: err.Error()})
	default:
		rs.logger().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		rs.JSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func (rs Responder) logger() *zap.Logger {
	if rs.Logger == nil {
		return zap.NewNop()
	}
	return rs.Logger
}
