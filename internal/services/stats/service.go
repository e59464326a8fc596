// Package stats aggregates the admin overview.
package stats

import (
	"context"
	"fmt"

	"aegis/internal/models"
	"aegis/internal/repositories"
)

// LedgerReader reads the current dev-fund ledger.
type LedgerReader interface {
	Snapshot(ctx context.Context) (*models.DevFundLedger, error)
}

type Service interface {
	Overview(ctx context.Context) (*models.AdminStats, error)
}

type service struct {
	txRepo repositories.TransactionRepository
	ledger LedgerReader
}

func NewService(txRepo repositories.TransactionRepository, ledger LedgerReader) Service {
	return &service{txRepo: txRepo, ledger: ledger}
}

func (s *service) Overview(ctx context.Context) (*models.AdminStats, error) {
	txStats, err := s.txRepo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction stats: %w", err)
	}
	ledger, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dev fund ledger: %w", err)
	}

	return &models.AdminStats{
		TotalTransactions: txStats.TotalTransactions,
		TotalVolume:       txStats.TotalVolume,
		TotalFees:         txStats.TotalFees,
		AverageFee:        txStats.AvgFee,
		DevFundBalance:    ledger.Balance,
		DevFundCollected:  ledger.TotalCollected,
	}, nil
}
