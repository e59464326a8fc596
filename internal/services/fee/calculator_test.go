package fee

import (
	"math"
	"testing"

	"aegis/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name        string
		amount      float64
		policy      models.FeePolicy
		wantFee     float64
		wantDevFund float64
		wantFinal   float64
	}{
		{
			name:        "percentage within bounds",
			amount:      100,
			policy:      DefaultPolicy(),
			wantFee:     1.5,
			wantDevFund: 1.4999,
			wantFinal:   98.5,
		},
		{
			name:        "minimum fee applies",
			amount:      0.01,
			policy:      DefaultPolicy(),
			wantFee:     0.001,
			wantDevFund: 0.0009,
			wantFinal:   0.009,
		},
		{
			name:        "maximum fee applies",
			amount:      1000,
			policy:      DefaultPolicy(),
			wantFee:     2.0,
			wantDevFund: 1.9999,
			wantFinal:   998,
		},
		{
			name:        "small amount percentage",
			amount:      10,
			policy:      DefaultPolicy(),
			wantFee:     0.15,
			wantDevFund: 0.1499,
			wantFinal:   9.85,
		},
		{
			name:   "disabled policy charges nothing",
			amount: 100,
			policy: func() models.FeePolicy {
				p := DefaultPolicy()
				p.Enabled = false
				return p
			}(),
			wantFee:     0,
			wantDevFund: 0,
			wantFinal:   100,
		},
		{
			name:   "min above max yields max",
			amount: 100,
			policy: func() models.FeePolicy {
				p := DefaultPolicy()
				p.MinFee = 5
				p.MaxFee = 2
				return p
			}(),
			wantFee:     2,
			wantDevFund: 1.9999,
			wantFinal:   98,
		},
		{
			name:        "zero amount still pays minimum",
			amount:      0,
			policy:      DefaultPolicy(),
			wantFee:     0.001,
			wantDevFund: 0.0009,
			wantFinal:   -0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFee(tt.amount, tt.policy)

			assert.Equal(t, tt.amount, got.Amount)
			assert.InDelta(t, tt.wantFee, got.Fee, 1e-12)
			assert.InDelta(t, tt.wantDevFund, got.DevFundFee, 1e-12)
			assert.InDelta(t, tt.wantFinal, got.FinalAmount, 1e-12)
			assert.Equal(t, models.DefaultNetworkFee, got.NetworkFee)
			assert.Equal(t, got.Amount-got.Fee, got.FinalAmount)
		})
	}
}

func TestComputeFee_ExactValues(t *testing.T) {
	got := ComputeFee(100, DefaultPolicy())

	assert.Equal(t, 1.5, got.Fee)
	assert.Equal(t, 98.5, got.FinalAmount)
	assert.Equal(t, 1.4999, got.DevFundFee)
}

func TestComputeFee_NegativeDevFundShare(t *testing.T) {
	p := DefaultPolicy()
	p.MinFee = 0
	p.Percentage = 0.0001

	got := ComputeFee(1, p)

	assert.Less(t, got.DevFundFee, 0.0)
	assert.InDelta(t, got.Fee-models.DefaultNetworkFee, got.DevFundFee, 1e-15)
}

func TestComputeFee_NetworkFeeDefaultsWhenUnset(t *testing.T) {
	p := DefaultPolicy()
	p.NetworkFee = 0

	got := ComputeFee(100, p)

	assert.Equal(t, models.DefaultNetworkFee, got.NetworkFee)
}

func TestComputeFee_Deterministic(t *testing.T) {
	p := DefaultPolicy()
	for _, amount := range []float64{0.01, 1, 3.3333, 100, 1e9, -5} {
		a := ComputeFee(amount, p)
		b := ComputeFee(amount, p)
		assert.Equal(t, math.Float64bits(a.Fee), math.Float64bits(b.Fee))
		assert.Equal(t, math.Float64bits(a.FinalAmount), math.Float64bits(b.FinalAmount))
		assert.Equal(t, math.Float64bits(a.DevFundFee), math.Float64bits(b.DevFundFee))
	}
}

func TestCalculator(t *testing.T) {
	c := NewCalculator(DefaultPolicy())

	assert.Equal(t, ComputeFee(42, DefaultPolicy()), c.Calculate(42))
}
