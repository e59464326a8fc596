package transfer

import (
	"context"

	"aegis/internal/models"
)

// PolicySource supplies the current fee policy.
type PolicySource interface {
	Get(ctx context.Context) (*models.FeePolicy, error)
}

// FeeRecorder credits the dev-fund share of a fee.
type FeeRecorder interface {
	RecordFee(ctx context.Context, devFundFee float64) error
}

// Service records outgoing transfers and the fees taken from them.
type Service interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	Get(ctx context.Context, txID string) (*models.Transaction, error)
}

type SendRequest struct {
	Recipient string
	Amount    float64
}

// SendResult is the fee breakdown of an accepted send.
type SendResult struct {
	TxID        string  `json:"txId"`
	Amount      float64 `json:"amount"`
	Fee         float64 `json:"fee"`
	NetworkFee  float64 `json:"networkFee"`
	DevFundFee  float64 `json:"devFundFee"`
	FinalAmount float64 `json:"finalAmount"`
	Recipient   string  `json:"recipient"`
}
