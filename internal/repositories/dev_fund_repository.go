package repositories

import (
	"context"
	"errors"
	"time"

	"aegis/internal/models"
)

var (
	ErrLedgerNotFound      = errors.New("dev fund ledger not found")
	ErrInsufficientBalance = errors.New("insufficient dev fund balance")
)

// DevFundRepository persists the dev-fund ledger. Implementations must make
// Withdraw an atomic check-then-decrement so concurrent calls cannot overdraw.
type DevFundRepository interface {
	Get(ctx context.Context) (*models.DevFundLedger, error)
	// Put replaces the ledger row; used for seeding.
	Put(ctx context.Context, ledger *models.DevFundLedger) error
	// AddFee credits amount to both Balance and TotalCollected.
	AddFee(ctx context.Context, amount float64) (*models.DevFundLedger, error)
	// Withdraw debits amount or fails with ErrInsufficientBalance leaving the
	// ledger untouched. A request whose Reference is already recorded returns
	// that withdrawal without debiting again.
	Withdraw(ctx context.Context, req WithdrawalRequest) (*models.DevFundLedger, *models.DevFundWithdrawal, error)
	ListWithdrawals(ctx context.Context, limit int) ([]models.DevFundWithdrawal, error)
}

// WithdrawalRequest carries an already validated withdrawal.
type WithdrawalRequest struct {
	Reference string
	Amount    float64
	Address   string
	At        time.Time
}
