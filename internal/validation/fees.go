package validation

import (
	apperrors "aegis/internal/errors"
	"aegis/internal/models"
)

// FeePolicy checks the invariants a stored fee policy must hold:
// all numbers finite, percentage >= 0 and 0 <= minFee <= maxFee.
func FeePolicy(p *models.FeePolicy) error {
	v := New()

	v.Finite("percentage", p.Percentage)
	v.Finite("minFee", p.MinFee)
	v.Finite("maxFee", p.MaxFee)
	v.NonNegative("percentage", p.Percentage)
	v.NonNegative("minFee", p.MinFee)
	v.Check(p.MinFee <= p.MaxFee, "maxFee", "must not be less than minFee")
	v.Required("devFundAddress", p.DevFundAddress)
	v.MaxLength("devFundAddress", p.DevFundAddress, MaxAddressLength)

	if !v.Valid() {
		return apperrors.InvalidFeePolicy(v.FirstError())
	}
	return nil
}
