package fee

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/validation"

	"go.uber.org/zap"
)

// Service owns the process-wide fee policy.
type Service interface {
	// Initialize stores defaults when no policy exists yet.
	Initialize(ctx context.Context, defaults models.FeePolicy) error
	Get(ctx context.Context) (*models.FeePolicy, error)
	// Update validates and replaces the policy. NetworkFee is not writable.
	Update(ctx context.Context, policy models.FeePolicy) (*models.FeePolicy, error)
	// Preview computes a breakdown for any finite amount, including zero and
	// negative amounts.
	Preview(ctx context.Context, amount float64) (models.FeeBreakdown, error)
}

type service struct {
	repo  repositories.FeePolicyRepository
	cache repositories.PolicyCache
	log   *zap.Logger

	mu sync.Mutex
}

// NewService creates a new fee policy service
func NewService(repo repositories.FeePolicyRepository, cache repositories.PolicyCache, log *zap.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		cache = repositories.NoopPolicyCache{}
	}
	return &service{
		repo:  repo,
		cache: cache,
		log:   logger.Named(log, "fee"),
	}
}

func (s *service) Initialize(ctx context.Context, defaults models.FeePolicy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Get(ctx); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrFeePolicyNotFound) {
		return fmt.Errorf("failed to load fee policy: %w", err)
	}

	defaults.NetworkFee = models.DefaultNetworkFee
	if err := validation.FeePolicy(&defaults); err != nil {
		return fmt.Errorf("default fee policy: %w", err)
	}
	if err := s.repo.Save(ctx, &defaults); err != nil {
		return err
	}
	s.log.Info("seeded fee policy",
		zap.Bool("enabled", defaults.Enabled),
		zap.Float64("percentage", defaults.Percentage),
		zap.Float64("min_fee", defaults.MinFee),
		zap.Float64("max_fee", defaults.MaxFee))
	return nil
}

func (s *service) Get(ctx context.Context) (*models.FeePolicy, error) {
	// Try cache first
	if policy, found, err := s.cache.GetFeePolicy(ctx); err != nil {
		s.log.Warn("fee policy cache read failed", zap.Error(err))
	} else if found {
		return policy, nil
	}

	// Fill under mu so a concurrent Update cannot be overwritten by the
	// policy read here.
	s.mu.Lock()
	defer s.mu.Unlock()

	policy, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee policy: %w", err)
	}

	if err := s.cache.SetFeePolicy(ctx, policy); err != nil {
		s.log.Warn("fee policy cache write failed", zap.Error(err))
	}
	return policy, nil
}

func (s *service) Update(ctx context.Context, policy models.FeePolicy) (*models.FeePolicy, error) {
	policy.NetworkFee = models.DefaultNetworkFee
	if err := validation.FeePolicy(&policy); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, &policy); err != nil {
		return nil, err
	}
	if err := s.cache.SetFeePolicy(ctx, &policy); err != nil {
		s.log.Warn("fee policy cache write failed", zap.Error(err))
		if err := s.cache.InvalidateFeePolicy(ctx); err != nil {
			s.log.Warn("fee policy cache invalidation failed", zap.Error(err))
		}
	}

	s.log.Info("fee policy updated",
		zap.Bool("enabled", policy.Enabled),
		zap.Float64("percentage", policy.Percentage),
		zap.Float64("min_fee", policy.MinFee),
		zap.Float64("max_fee", policy.MaxFee),
		zap.String("dev_fund_address", policy.DevFundAddress))
	return &policy, nil
}

func (s *service) Preview(ctx context.Context, amount float64) (models.FeeBreakdown, error) {
	if err := validation.ValidatePreviewAmount(amount); err != nil {
		return models.FeeBreakdown{}, err
	}
	policy, err := s.Get(ctx)
	if err != nil {
		return models.FeeBreakdown{}, err
	}
	return ComputeFee(amount, *policy), nil
}
