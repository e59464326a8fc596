package models

// AdminStats is the admin overview of fee and dev-fund activity.
type AdminStats struct {
	TotalTransactions int64   `json:"totalTransactions"`
	TotalVolume       float64 `json:"totalVolume"`
	TotalFees         float64 `json:"totalFees"`
	AverageFee        float64 `json:"averageFee"`
	DevFundBalance    float64 `json:"devFundBalance"`
	DevFundCollected  float64 `json:"devFundCollected"`
}
