package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "aegis/internal/errors"
	"aegis/internal/logger"
	"aegis/internal/models"
	"aegis/internal/repositories"
	"aegis/internal/services/fee"
	"aegis/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type service struct {
	policies PolicySource
	ledger   FeeRecorder
	txRepo   repositories.TransactionRepository
	log      *zap.Logger
}

// NewService creates a new transfer service instance.
func NewService(policies PolicySource, ledger FeeRecorder, txRepo repositories.TransactionRepository, log *zap.Logger) Service {
	return &service{
		policies: policies,
		ledger:   ledger,
		txRepo:   txRepo,
		log:      logger.Named(log, "transfer"),
	}
}

// Send validates the request, computes the fee under the current policy,
// stores the transaction as pending and credits the dev-fund share.
func (s *service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	recipient, err := validation.ValidateRecipient(req.Recipient)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSendAmount(req.Amount); err != nil {
		return nil, err
	}

	policy, err := s.policies.Get(ctx)
	if err != nil {
		return nil, err
	}
	breakdown := fee.ComputeFee(req.Amount, *policy)

	tx := &models.Transaction{
		TxID:        newTxID(),
		Recipient:   recipient,
		Amount:      breakdown.Amount,
		Fee:         breakdown.Fee,
		NetworkFee:  breakdown.NetworkFee,
		DevFundFee:  breakdown.DevFundFee,
		FinalAmount: breakdown.FinalAmount,
		Status:      models.TransactionStatusPending,
		Metadata: models.NewJSON(map[string]interface{}{
			"feeEnabled":     policy.Enabled,
			"feePercentage":  policy.Percentage,
			"devFundAddress": policy.DevFundAddress,
		}),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	if err := s.ledger.RecordFee(ctx, breakdown.DevFundFee); err != nil {
		s.log.Error("failed to record dev fund fee",
			zap.String("tx_id", tx.TxID),
			zap.Float64("dev_fund_fee", breakdown.DevFundFee),
			zap.Error(err))
		if statusErr := s.txRepo.UpdateStatus(ctx, tx.TxID, models.TransactionStatusFailed); statusErr != nil {
			s.log.Error("failed to mark transaction failed", zap.String("tx_id", tx.TxID), zap.Error(statusErr))
		}
		return nil, fmt.Errorf("failed to record dev fund fee: %w", err)
	}

	s.log.Info("transfer accepted",
		zap.String("tx_id", tx.TxID),
		zap.String("recipient", recipient),
		zap.Float64("amount", breakdown.Amount),
		zap.Float64("fee", breakdown.Fee),
		zap.Float64("dev_fund_fee", breakdown.DevFundFee))

	return &SendResult{
		TxID:        tx.TxID,
		Amount:      breakdown.Amount,
		Fee:         breakdown.Fee,
		NetworkFee:  breakdown.NetworkFee,
		DevFundFee:  breakdown.DevFundFee,
		FinalAmount: breakdown.FinalAmount,
		Recipient:   recipient,
	}, nil
}

func (s *service) Get(ctx context.Context, txID string) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByTxID(ctx, strings.TrimSpace(txID))
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

func newTxID() string {
	return "tx_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}
