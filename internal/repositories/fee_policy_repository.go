package repositories

import (
	"context"
	"errors"
	"fmt"

	"aegis/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFeePolicyNotFound = errors.New("fee policy not found")

// FeePolicyRepository stores the single process-wide fee policy.
type FeePolicyRepository interface {
	Get(ctx context.Context) (*models.FeePolicy, error)
	// Save replaces the stored policy.
	Save(ctx context.Context, policy *models.FeePolicy) error
}

type feePolicyRepository struct {
	db *gorm.DB
}

func NewFeePolicyRepository(db *gorm.DB) FeePolicyRepository {
	return &feePolicyRepository{db: db}
}

func (r *feePolicyRepository) Get(ctx context.Context) (*models.FeePolicy, error) {
	var policy models.FeePolicy
	if err := r.db.WithContext(ctx).First(&policy, models.FeePolicyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeePolicyNotFound
		}
		return nil, fmt.Errorf("failed to get fee policy: %w", err)
	}
	return &policy, nil
}

func (r *feePolicyRepository) Save(ctx context.Context, policy *models.FeePolicy) error {
	policy.ID = models.FeePolicyID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(policy).Error
	if err != nil {
		return fmt.Errorf("failed to save fee policy: %w", err)
	}
	return nil
}
