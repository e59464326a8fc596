// Package devfund maintains the dev-fund ledger: fee contributions in,
// operator withdrawals out.
package devfund

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	apperrors "aegis/internal/errors"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/validation"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config bounds retries of transient store failures.
type Config struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

// DefaultConfig returns the retry settings used when none are supplied.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     3,
		InitialInterval: 50 * time.Millisecond,
	}
}

// WithdrawResult is the ledger state after a successful withdrawal together
// with its audit record.
type WithdrawResult struct {
	Ledger     *models.DevFundLedger
	Withdrawal *models.DevFundWithdrawal
}

type Service interface {
	// Initialize stores seed when no ledger exists yet.
	Initialize(ctx context.Context, seed models.DevFundLedger) error
	Snapshot(ctx context.Context) (*models.DevFundLedger, error)
	// RecordFee credits a fee's dev-fund share. Negative shares are recorded
	// as zero.
	RecordFee(ctx context.Context, devFundFee float64) error
	Withdraw(ctx context.Context, amount float64, address string) (*WithdrawResult, error)
	Withdrawals(ctx context.Context, limit int) ([]models.DevFundWithdrawal, error)
}

type service struct {
	repo repositories.DevFundRepository
	cfg  Config
	log  *zap.Logger
	now  func() time.Time

	// withdrawMu serializes withdrawals in this process; the repository
	// guarantees atomicity across processes.
	withdrawMu sync.Mutex
}

func NewService(repo repositories.DevFundRepository, cfg Config, log *zap.Logger) Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultConfig().InitialInterval
	}
	return &service{
		repo: repo,
		cfg:  cfg,
		log:  logger.Named(log, "devfund"),
		now:  time.Now,
	}
}

func (s *service) Initialize(ctx context.Context, seed models.DevFundLedger) error {
	if _, err := s.repo.Get(ctx); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrLedgerNotFound) {
		return fmt.Errorf("failed to load dev fund ledger: %w", err)
	}

	if err := s.repo.Put(ctx, &seed); err != nil {
		return fmt.Errorf("failed to seed dev fund ledger: %w", err)
	}
	s.log.Info("seeded dev fund ledger",
		zap.Float64("balance", seed.Balance),
		zap.Float64("total_collected", seed.TotalCollected))
	return nil
}

func (s *service) Snapshot(ctx context.Context) (*models.DevFundLedger, error) {
	return retry(ctx, s.cfg, func() (*models.DevFundLedger, error) {
		ledger, err := s.repo.Get(ctx)
		if err != nil {
			return nil, classify(err)
		}
		return ledger, nil
	})
}

func (s *service) RecordFee(ctx context.Context, devFundFee float64) error {
	if math.IsNaN(devFundFee) || math.IsInf(devFundFee, 0) {
		return apperrors.ErrInvalidAmount
	}
	if devFundFee <= 0 {
		if devFundFee < 0 {
			s.log.Debug("negative dev fund share recorded as zero", zap.Float64("dev_fund_fee", devFundFee))
		}
		return nil
	}

	ledger, err := retry(ctx, s.cfg, func() (*models.DevFundLedger, error) {
		ledger, err := s.repo.AddFee(ctx, devFundFee)
		if err != nil {
			return nil, classify(err)
		}
		return ledger, nil
	})
	if err != nil {
		return fmt.Errorf("failed to record dev fund fee: %w", err)
	}

	s.log.Debug("dev fund fee recorded",
		zap.Float64("amount", devFundFee),
		zap.Float64("balance", ledger.Balance))
	return nil
}

func (s *service) Withdraw(ctx context.Context, amount float64, address string) (*WithdrawResult, error) {
	if err := validation.ValidateSendAmount(amount); err != nil {
		return nil, err
	}
	address, err := validation.ValidateAddress(address)
	if err != nil {
		return nil, err
	}

	s.withdrawMu.Lock()
	defer s.withdrawMu.Unlock()

	req := repositories.WithdrawalRequest{
		Reference: uuid.New().String(),
		Amount:    amount,
		Address:   address,
		At:        s.now().UTC(),
	}

	result, err := retry(ctx, s.cfg, func() (*WithdrawResult, error) {
		ledger, record, err := s.repo.Withdraw(ctx, req)
		if err != nil {
			return nil, classify(err)
		}
		return &WithdrawResult{Ledger: ledger, Withdrawal: record}, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.log.Info("withdrawal rejected",
				zap.Float64("amount", amount),
				zap.String("reason", "insufficient funds"))
		} else {
			s.log.Error("withdrawal failed", zap.Error(err), zap.String("reference", req.Reference))
		}
		return nil, err
	}

	s.log.Info("dev fund withdrawal",
		zap.String("reference", req.Reference),
		zap.Float64("amount", amount),
		zap.String("address", address),
		zap.Float64("balance", result.Ledger.Balance))
	return result, nil
}

func (s *service) Withdrawals(ctx context.Context, limit int) ([]models.DevFundWithdrawal, error) {
	return retry(ctx, s.cfg, func() ([]models.DevFundWithdrawal, error) {
		list, err := s.repo.ListWithdrawals(ctx, limit)
		if err != nil {
			return nil, classify(err)
		}
		return list, nil
	})
}

// classify maps repository errors onto domain errors and marks everything
// that a retry cannot fix as permanent.
func classify(err error) error {
	switch {
	case errors.Is(err, repositories.ErrInsufficientBalance):
		return backoff.Permanent(apperrors.ErrInsufficientFunds)
	case errors.Is(err, repositories.ErrLedgerNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return backoff.Permanent(err)
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return backoff.Permanent(err)
	}
	return err
}

func retry[T any](ctx context.Context, cfg Config, op func() (T, error)) (T, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = cfg.InitialInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(cfg.MaxAttempts-1)), ctx)
	return backoff.RetryWithData(op, b)
}
