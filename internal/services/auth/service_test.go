package auth

import (
	"context"
	"testing"
	"time"

	apperrors "aegis/internal/errors"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-secret"
	testEmail    = "admin@aegis.local"
	testPassword = "Adm1n#Passw0rd"
)

func newService(t *testing.T) (Service, repositories.UserRepository) {
	t.Helper()
	repo := repositories.NewMemoryUserRepository()
	svc := NewService(repo, Config{JWTSecret: testSecret}, zap.NewNop())
	created, err := svc.EnsureUser(context.Background(), testEmail, testPassword, models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, created)
	return svc, repo
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	result, err := svc.Login(ctx, "  ADMIN@aegis.local ", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, testEmail, result.User.Email)
	assert.WithinDuration(t, time.Now().Add(DefaultAccessTokenTTL), result.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(ctx, result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.ElementsMatch(t, models.GetDefaultPermissions(models.RoleAdmin), claims.Permissions)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Login(ctx, testEmail, "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@aegis.local", testPassword)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)
	user, err := repo.GetByEmail(ctx, testEmail)
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("stale token version", func(t *testing.T) {
		token, _, err := utils.GenerateAccessToken(&models.UserClaims{
			UserID:       user.ID,
			Role:         models.RoleAdmin,
			TokenVersion: user.TokenVersion + 1,
		}, testSecret, time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, _, err := utils.GenerateAccessToken(&models.UserClaims{UserID: 999, TokenVersion: 1}, testSecret, time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_EnsureUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.EnsureUser(ctx, testEmail, testPassword, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.EnsureUser(ctx, "not-an-email", testPassword, models.RoleAdmin)
	assert.Error(t, err)

	_, err = svc.EnsureUser(ctx, "ops@aegis.local", "short", models.RoleAdmin)
	assert.Error(t, err)
}
