package validation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	apperrors "aegis/internal/errors"
	"aegis/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "number", raw: `100`, want: 100},
		{name: "fraction", raw: `0.01`, want: 0.01},
		{name: "numeric string", raw: `" 12.5 "`, want: 12.5},
		{name: "zero is numeric", raw: `0`, want: 0},
		{name: "negative is numeric", raw: `-3`, want: -3},
		{name: "absent", raw: ``, wantErr: true},
		{name: "null", raw: `null`, wantErr: true},
		{name: "empty string", raw: `""`, wantErr: true},
		{name: "word", raw: `"abc"`, wantErr: true},
		{name: "boolean", raw: `true`, wantErr: true},
		{name: "object", raw: `{"v":1}`, wantErr: true},
		{name: "infinity string", raw: `"Infinity"`, wantErr: true},
		{name: "nan string", raw: `"NaN"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateSendAmount(t *testing.T) {
	assert.NoError(t, ValidateSendAmount(0.5))
	assert.ErrorIs(t, ValidateSendAmount(0), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateSendAmount(-1), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, ValidateSendAmount(math.Inf(1)), apperrors.ErrInvalidAmount)

	assert.NoError(t, ValidatePreviewAmount(0))
	assert.NoError(t, ValidatePreviewAmount(-10))
	assert.ErrorIs(t, ValidatePreviewAmount(math.NaN()), apperrors.ErrInvalidAmount)
}

func TestValidateAddress(t *testing.T) {
	addr, err := ValidateAddress("  aegs1abc  ")
	assert.NoError(t, err)
	assert.Equal(t, "aegs1abc", addr)

	_, err = ValidateAddress("   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAddress)

	_, err = ValidateAddress(strings.Repeat("a", MaxAddressLength+1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAddress)

	_, err = ValidateRecipient("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRecipient)
}

func TestFeePolicy(t *testing.T) {
	valid := models.FeePolicy{Enabled: true, Percentage: 1.5, MinFee: 0.001, MaxFee: 2, DevFundAddress: "aegs1fund"}

	tests := []struct {
		name    string
		mutate  func(p *models.FeePolicy)
		wantErr string
	}{
		{name: "valid", mutate: func(p *models.FeePolicy) {}},
		{name: "min equals max", mutate: func(p *models.FeePolicy) { p.MinFee, p.MaxFee = 1, 1 }},
		{name: "negative percentage", mutate: func(p *models.FeePolicy) { p.Percentage = -1 }, wantErr: "percentage must not be negative"},
		{name: "negative min", mutate: func(p *models.FeePolicy) { p.MinFee = -0.1 }, wantErr: "minFee must not be negative"},
		{name: "min above max", mutate: func(p *models.FeePolicy) { p.MinFee, p.MaxFee = 5, 2 }, wantErr: "maxFee must not be less than minFee"},
		{name: "nan percentage", mutate: func(p *models.FeePolicy) { p.Percentage = math.NaN() }, wantErr: "percentage must be a finite number"},
		{name: "missing address", mutate: func(p *models.FeePolicy) { p.DevFundAddress = " " }, wantErr: "devFundAddress must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := FeePolicy(&p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidFeePolicy)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidator_Password(t *testing.T) {
	v := New()
	v.Password("password", "Str0ng!pass")
	assert.True(t, v.Valid())

	v = New()
	v.Password("password", "weak")
	assert.False(t, v.Valid())
	assert.Equal(t, "password must be at least 8 characters long", v.FirstError())

	v = New()
	v.Password("password", "Str0ngpass")
	assert.False(t, v.Valid())
	assert.Equal(t, "password must contain at least one special character", v.FirstError())
}
