package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/services/auth"
	"aegis/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "middleware-secret"

func setup(t *testing.T) (*fiber.App, repositories.UserRepository) {
	t.Helper()
	repo := repositories.NewMemoryUserRepository()
	authSvc := auth.NewService(repo, auth.Config{JWTSecret: secret}, zap.NewNop())
	ctx := context.Background()
	_, err := authSvc.EnsureUser(ctx, "admin@aegis.local", "Adm1n#Passw0rd", models.RoleAdmin)
	require.NoError(t, err)
	_, err = authSvc.EnsureUser(ctx, "user@aegis.local", "Us3r#Passw0rd", models.RoleUser)
	require.NoError(t, err)

	app := fiber.New()
	m := NewAuthMiddleware(authSvc, zap.NewNop())
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/protected", m.Handler, ok)
	app.Get("/admin", m.Handler, AdminAuthMiddleware, ok)
	app.Post("/fees", m.Handler, AdminAuthMiddleware, HasPermission(models.PermissionFeesWrite), ok)
	return app, repo
}

func tokenFor(t *testing.T, repo repositories.UserRepository, email string) string {
	t.Helper()
	user, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	token, _, err := utils.GenerateAccessToken(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}, secret, time.Minute)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app, repo := setup(t)
	adminToken := tokenFor(t, repo, "admin@aegis.local")
	userToken := tokenFor(t, repo, "user@aegis.local")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"missing token", "GET", "/protected", "", fiber.StatusUnauthorized},
		{"bad token", "GET", "/protected", "nope", fiber.StatusUnauthorized},
		{"user token", "GET", "/protected", userToken, fiber.StatusOK},
		{"user on admin route", "GET", "/admin", userToken, fiber.StatusForbidden},
		{"admin on admin route", "GET", "/admin", adminToken, fiber.StatusOK},
		{"admin with permission", "POST", "/fees", adminToken, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, app, tt.method, tt.path, tt.token))
		})
	}
}

func TestAuthMiddleware_BasicScheme(t *testing.T) {
	app, _ := setup(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46YWRtaW4=")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHasPermission_MissingPermission(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{Role: models.RoleAdmin, Permissions: []string{models.PermissionReadAdmin}})
		return c.Next()
	}, HasPermission(models.PermissionDevFundWrite), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
