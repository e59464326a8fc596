package repositories

import (
	"context"
	"errors"
	"fmt"

	"aegis/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type devFundRepository struct {
	db *gorm.DB
}

func NewDevFundRepository(db *gorm.DB) DevFundRepository {
	return &devFundRepository{db: db}
}

func (r *devFundRepository) Get(ctx context.Context) (*models.DevFundLedger, error) {
	return r.get(r.db.WithContext(ctx), false)
}

func (r *devFundRepository) get(db *gorm.DB, forUpdate bool) (*models.DevFundLedger, error) {
	if forUpdate {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var ledger models.DevFundLedger
	if err := db.First(&ledger, models.DevFundLedgerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to get dev fund ledger: %w", err)
	}
	return &ledger, nil
}

func (r *devFundRepository) Put(ctx context.Context, ledger *models.DevFundLedger) error {
	ledger.ID = models.DevFundLedgerID
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(ledger).Error
	if err != nil {
		return fmt.Errorf("failed to save dev fund ledger: %w", err)
	}
	return nil
}

func (r *devFundRepository) AddFee(ctx context.Context, amount float64) (*models.DevFundLedger, error) {
	var ledger *models.DevFundLedger
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.DevFundLedger{}).
			Where("id = ?", models.DevFundLedgerID).
			Updates(map[string]interface{}{
				"balance":         gorm.Expr("balance + ?", amount),
				"total_collected": gorm.Expr("total_collected + ?", amount),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to record fee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrLedgerNotFound
		}

		var err error
		ledger, err = r.get(tx, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ledger, nil
}

func (r *devFundRepository) Withdraw(ctx context.Context, req WithdrawalRequest) (*models.DevFundLedger, *models.DevFundWithdrawal, error) {
	var (
		ledger     *models.DevFundLedger
		withdrawal *models.DevFundWithdrawal
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent withdrawals across processes.
		current, err := r.get(tx, true)
		if err != nil {
			return err
		}

		// A retry after a lost COMMIT acknowledgement finds its own record.
		var existing models.DevFundWithdrawal
		err = tx.Where("reference = ?", req.Reference).Take(&existing).Error
		if err == nil {
			ledger, withdrawal = current, &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up withdrawal: %w", err)
		}

		if req.Amount > current.Balance {
			return ErrInsufficientBalance
		}

		at := req.At
		current.Balance -= req.Amount
		current.LastWithdrawal = &at
		current.WithdrawalAddress = req.Address
		if err := tx.Save(current).Error; err != nil {
			return fmt.Errorf("failed to update dev fund ledger: %w", err)
		}

		record := &models.DevFundWithdrawal{
			Reference:    req.Reference,
			Amount:       req.Amount,
			Address:      req.Address,
			BalanceAfter: current.Balance,
			CreatedAt:    at,
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to record withdrawal: %w", err)
		}

		ledger, withdrawal = current, record
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return ledger, withdrawal, nil
}

func (r *devFundRepository) ListWithdrawals(ctx context.Context, limit int) ([]models.DevFundWithdrawal, error) {
	var withdrawals []models.DevFundWithdrawal
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}
