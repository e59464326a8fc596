package models

import (
	"time"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusConfirmed = "confirmed"
	TransactionStatusFailed    = "failed"
)

// Transaction is a recorded outgoing transfer and the fee taken from it.
type Transaction struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	TxID        string    `gorm:"uniqueIndex;not null" json:"txId"`
	Recipient   string    `gorm:"not null" json:"recipient"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Fee         float64   `gorm:"not null;default:0" json:"fee"`
	NetworkFee  float64   `gorm:"not null;default:0" json:"networkFee"`
	DevFundFee  float64   `gorm:"not null;default:0" json:"devFundFee"`
	FinalAmount float64   `gorm:"not null" json:"finalAmount"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	Metadata    JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
	UpdatedAt   time.Time `json:"-"`
}
