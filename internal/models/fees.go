package models

import "time"

// DefaultNetworkFee is the fixed network component of every enabled fee.
const DefaultNetworkFee = 0.0001

// FeePolicyID is the primary key of the single policy row.
const FeePolicyID uint = 1

// FeePolicy describes whether transfer fees apply and how they are computed.
type FeePolicy struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	Enabled        bool      `gorm:"not null" json:"enabled"`
	Percentage     float64   `gorm:"not null" json:"percentage"`
	MinFee         float64   `gorm:"not null" json:"minFee"`
	MaxFee         float64   `gorm:"not null" json:"maxFee"`
	NetworkFee     float64   `gorm:"not null" json:"networkFee"`
	DevFundAddress string    `gorm:"not null" json:"devFundAddress"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FeeBreakdown is the computed split of a transfer amount. It is never persisted.
type FeeBreakdown struct {
	Amount      float64 `json:"amount"`
	Fee         float64 `json:"fee"`
	NetworkFee  float64 `json:"networkFee"`
	DevFundFee  float64 `json:"devFundFee"`
	FinalAmount float64 `json:"finalAmount"`
}
