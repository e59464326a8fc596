package models

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Application permissions
const (
	PermissionReadAdmin    = "admin:read"
	PermissionFeesWrite    = "fees:write"
	PermissionDevFundWrite = "devfund:write"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	return slices.Contains(c.Permissions, permission)
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionFeesWrite,
			PermissionDevFundWrite,
		}
	default:
		return []string{}
	}
}
