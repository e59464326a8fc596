package utils

import (
	"testing"
	"time"

	"aegis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	claims := &models.UserClaims{
		UserID:       7,
		Email:        "admin@aegis.local",
		Role:         models.RoleAdmin,
		Permissions:  models.GetDefaultPermissions(models.RoleAdmin),
		TokenVersion: 2,
	}

	token, expiresAt, err := GenerateAccessToken(claims, "secret", 15*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	parsed, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), parsed.UserID)
	assert.Equal(t, models.RoleAdmin, parsed.Role)
	assert.Equal(t, 2, parsed.TokenVersion)
	assert.True(t, parsed.HasPermission(models.PermissionFeesWrite))
}

func TestParseToken_Rejects(t *testing.T) {
	claims := &models.UserClaims{UserID: 1, Role: models.RoleAdmin}

	token, _, err := GenerateAccessToken(claims, "secret", time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err, "wrong secret")

	expired, _, err := GenerateAccessToken(claims, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "secret")
	assert.Error(t, err, "expired token")

	_, err = ParseToken("not-a-token", "secret")
	assert.Error(t, err)

	_, _, err = GenerateAccessToken(claims, "", time.Minute)
	assert.Error(t, err)
}
