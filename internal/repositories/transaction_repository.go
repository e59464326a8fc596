package repositories

import (
	"context"
	"errors"

	"aegis/internal/models"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository stores recorded sends.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByTxID(ctx context.Context, txID string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, txID, status string) error
	GetStats(ctx context.Context) (*TransactionStats, error)
}

// TransactionStats represents aggregated transaction statistics.
// Failed transactions are excluded.
type TransactionStats struct {
	TotalTransactions int64
	TotalVolume       float64
	TotalFees         float64
	AvgFee            float64
}
