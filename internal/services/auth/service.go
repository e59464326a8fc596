// Package auth signs operators in and validates their access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "aegis/internal/errors"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/utils"
	"aegis/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const DefaultAccessTokenTTL = 15 * time.Minute

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionExpired  = errors.New("session expired")
	ErrAccountDisabled = errors.New("account disabled")
)

type Config struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ValidateToken parses token and checks it against the current user
	// record, so bumping TokenVersion revokes outstanding tokens.
	ValidateToken(ctx context.Context, token string) (*models.UserClaims, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	// EnsureUser creates the account unless one with email already exists.
	EnsureUser(ctx context.Context, email, password, role string) (created bool, err error)
}

type service struct {
	userRepo repositories.UserRepository
	cfg      Config
	log      *zap.Logger
}

func NewService(userRepo repositories.UserRepository, cfg Config, log *zap.Logger) Service {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = DefaultAccessTokenTTL
	}
	return &service{
		userRepo: userRepo,
		cfg:      cfg,
		log:      logger.Named(log, "auth"),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.log.Info("login failed: unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.log.Info("login failed: incorrect password", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != "" && user.Status != models.UserStatusActive {
		s.log.Info("login failed: account disabled", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAccessToken(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.log.Info("user logged in", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
	return &LoginResult{User: user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (*models.UserClaims, error) {
	claims, err := utils.ParseToken(token, s.cfg.JWTSecret)
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionExpired
	}
	if user.Status != "" && user.Status != models.UserStatusActive {
		return nil, ErrAccountDisabled
	}
	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *service) EnsureUser(ctx context.Context, email, password, role string) (bool, error) {
	email = normalizeEmail(email)

	v := validation.New()
	v.Email("email", email)
	v.Password("password", password)
	if !v.Valid() {
		return false, fmt.Errorf("invalid account: %s", v.FirstError())
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Password:     string(hash),
		Role:         role,
		Status:       models.UserStatusActive,
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return false, nil
		}
		return false, err
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", role))
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
