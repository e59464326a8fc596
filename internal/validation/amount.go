package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "aegis/internal/errors"
)

// ParseAmount decodes an amount sent either as a JSON number or a numeric
// string. Absent, null, blank, non-numeric and non-finite values are rejected
// with ErrInvalidAmount. Sign is not checked here.
func ParseAmount(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, apperrors.ErrInvalidAmount
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, apperrors.ErrInvalidAmount
		}
		text = strings.TrimSpace(text)
	} else {
		text = string(raw)
	}
	if text == "" {
		return 0, apperrors.ErrInvalidAmount
	}

	amount, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidAmount
	}
	return amount, ValidatePreviewAmount(amount)
}

// ValidatePreviewAmount accepts any finite number, including zero and negatives.
func ValidatePreviewAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

// ValidateSendAmount requires a finite amount strictly greater than zero.
func ValidateSendAmount(amount float64) error {
	if err := ValidatePreviewAmount(amount); err != nil {
		return err
	}
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	return nil
}

// ValidateAddress returns the trimmed address, or ErrInvalidAddress when it is
// blank or too long.
func ValidateAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" || len(address) > MaxAddressLength {
		return "", apperrors.ErrInvalidAddress
	}
	return address, nil
}

// ValidateRecipient is ValidateAddress for the send path.
func ValidateRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" || len(recipient) > MaxAddressLength {
		return "", apperrors.ErrInvalidRecipient
	}
	return recipient, nil
}
