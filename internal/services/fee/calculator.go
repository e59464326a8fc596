// Package fee computes transfer fees and owns the current fee policy.
package fee

import (
	"math"

	"aegis/internal/models"
)

// ComputeFee splits amount according to policy. It is pure: identical inputs
// always produce bit-identical output.
//
// The floor (MinFee) is applied before the ceiling (MaxFee), so a policy with
// MinFee > MaxFee always yields MaxFee. FinalAmount is not clamped and may be
// negative; callers decide whether to reject it. DevFundFee is Fee minus the
// network fee and may also be negative for tiny fees.
func ComputeFee(amount float64, policy models.FeePolicy) models.FeeBreakdown {
	networkFee := policy.NetworkFee
	if networkFee == 0 {
		networkFee = models.DefaultNetworkFee
	}

	var fee, devFundFee float64
	if policy.Enabled {
		fee = amount * (policy.Percentage / 100)
		fee = math.Max(policy.MinFee, fee)
		fee = math.Min(policy.MaxFee, fee)
		devFundFee = fee - networkFee
	}

	return models.FeeBreakdown{
		Amount:      amount,
		Fee:         fee,
		NetworkFee:  networkFee,
		DevFundFee:  devFundFee,
		FinalAmount: amount - fee,
	}
}

// Calculator computes breakdowns against a fixed policy.
type Calculator struct {
	policy models.FeePolicy
}

func NewCalculator(policy models.FeePolicy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Calculate(amount float64) models.FeeBreakdown {
	return ComputeFee(amount, c.policy)
}

// DefaultPolicy returns the policy used before any has been stored.
func DefaultPolicy() models.FeePolicy {
	return models.FeePolicy{
		Enabled:        true,
		Percentage:     1.5,
		MinFee:         0.001,
		MaxFee:         2.0,
		NetworkFee:     models.DefaultNetworkFee,
		DevFundAddress: "aegs1qqu5j3hxmvujs258zc2xuy8k6vmkzp5qxhqhec7",
	}
}
