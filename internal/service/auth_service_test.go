package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

func newAuthService() (*service.AuthService, *MockProfileRepo) {
	profiles := NewMockProfileRepo()
	return &service.AuthService{
		Users:    &MockUserRepo{},
		Profiles: profiles,
		Tokens:   auth.NewTokens("test-secret", time.Hour),
	}, profiles
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, profiles := newAuthService()
	ctx := context.Background()

	s, err := svc.SignUp(ctx, service.Credentials{Email: " Jane@Example.com ", Password: "secret1", FullName: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", s.Email)
	assert.NotEmpty(t, s.Token)

	p, err := profiles.GetByUserID(ctx, s.UserID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "jane", p.Username)

	claims, err := svc.Tokens.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.UserID, claims.Subject)

	_, err = svc.SignIn(ctx, service.Credentials{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.SignIn(ctx, service.Credentials{Email: "jane@example.com", Password: "wrong!!"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = svc.SignIn(ctx, service.Credentials{Email: "ghost@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
}

func TestSignUp_Validation(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, service.Credentials{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.SignUp(ctx, service.Credentials{Email: "a@example.com", Password: "123"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.SignUp(ctx, service.Credentials{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.SignUp(ctx, service.Credentials{Email: "a@example.com", Password: "secret1"})
	var ve *appErrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "An account with this email already exists", ve.Message)
}

func TestSignUp_ProfileFailureIsNotFatal(t *testing.T) {
	svc, profiles := newAuthService()
	profiles.createErr = errors.New("db down")

	s, err := svc.SignUp(context.Background(), service.Credentials{Email: "b@example.com", Password: "secret1"})
	require.NoError(t, err)

	profiles.createErr = nil
	ps := &service.ProfileService{ProfileRepo: profiles}
	p, err := ps.GetProfile(auth.ContextWithUser(context.Background(), s.UserID, s.Email))
	require.NoError(t, err)
	assert.Equal(t, "b", p.Username)
	assert.Equal(t, model.TierFree, p.SubscriptionTier)
}

func TestProfile_UpdateAndUpgrade(t *testing.T) {
	ps := &service.ProfileService{ProfileRepo: NewMockProfileRepo()}
	ctx := userCtx("alice")

	_, err := ps.UpdateProfile(ctx, service.ProfileInput{Username: " "})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	p, err := ps.UpdateProfile(ctx, service.ProfileInput{Username: "alice_c", Bio: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "alice_c", p.Username)

	again, err := ps.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Bio)

	assert.ErrorIs(t, ps.Upgrade(ctx, model.TierPro), appErrors.ErrNotImplemented)
	assert.ErrorIs(t, ps.Upgrade(ctx, "platinum"), appErrors.ErrValidation)

	admin, err := ps.IsAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestDefaultUsername(t *testing.T) {
	assert.Equal(t, "jane", service.DefaultUsername("jane@example.com"))
	assert.Equal(t, "user", service.DefaultUsername(""))
	assert.Equal(t, "user", service.DefaultUsername("@example.com"))
}
