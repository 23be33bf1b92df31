// internal/auth/context.go
package auth

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
)

type ctxKey string

const (
	userIDKey ctxKey = "auth_user_id"
	emailKey  ctxKey = "auth_email"
)

// ContextWithUser stores the caller's identity in ctx.
func ContextWithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, strings.TrimSpace(userID))
	return context.WithValue(ctx, emailKey, email)
}

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func EmailFromContext(ctx context.Context) string {
	v, _ := ctx.Value(emailKey).(string)
	return v
}

// CurrentUser is get_current_identity for owner-scoped use cases.
func CurrentUser(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", appErrors.ErrUnauthenticated
	}
	return id, nil
}
