package repositories

import (
	"context"

	"aegis/internal/models"
)

// PolicyCache caches the current fee policy in front of FeePolicyRepository.
type PolicyCache interface {
	// GetFeePolicy reports found=false on a cache miss.
	GetFeePolicy(ctx context.Context) (policy *models.FeePolicy, found bool, err error)
	SetFeePolicy(ctx context.Context, policy *models.FeePolicy) error
	InvalidateFeePolicy(ctx context.Context) error
}

// NoopPolicyCache always misses. Used when Redis is disabled.
type NoopPolicyCache struct{}

func (NoopPolicyCache) GetFeePolicy(context.Context) (*models.FeePolicy, bool, error) {
	return nil, false, nil
}

func (NoopPolicyCache) SetFeePolicy(context.Context, *models.FeePolicy) error { return nil }

func (NoopPolicyCache) InvalidateFeePolicy(context.Context) error { return nil }
