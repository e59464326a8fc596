package models

import "time"

// DevFundLedgerID is the primary key of the single ledger row.
const DevFundLedgerID uint = 1

// DevFundLedger records the accumulated dev-fund balance.
// TotalCollected never decreases; Balance moves with fees and withdrawals.
type DevFundLedger struct {
	ID                uint       `gorm:"primarykey" json:"-"`
	Balance           float64    `gorm:"not null;default:0" json:"balance"`
	TotalCollected    float64    `gorm:"not null;default:0" json:"totalCollected"`
	LastWithdrawal    *time.Time `json:"lastWithdrawal"`
	WithdrawalAddress string     `json:"withdrawalAddress"`
	UpdatedAt         time.Time  `json:"-"`
}

// DevFundWithdrawal is the audit record of one successful withdrawal.
type DevFundWithdrawal struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Reference    string    `gorm:"uniqueIndex;not null" json:"reference"`
	Amount       float64   `gorm:"not null" json:"amount"`
	Address      string    `gorm:"not null" json:"address"`
	BalanceAfter float64   `gorm:"not null" json:"balanceAfter"`
	CreatedAt    time.Time `json:"createdAt"`
}
