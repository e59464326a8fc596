// Package errors defines the domain error taxonomy surfaced to API clients.
package errors

// DomainError is a validation or business-rule failure with a stable code.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Error codes
const (
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInvalidAddress      = "INVALID_ADDRESS"
	CodeInvalidRecipient    = "INVALID_RECIPIENT"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeInvalidFeePolicy    = "INVALID_FEE_POLICY"
	CodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternal            = "INTERNAL_ERROR"
)

var (
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "Valid amount is required",
	}
	ErrInvalidAddress = &DomainError{
		Code:    CodeInvalidAddress,
		Message: "Withdrawal address is required",
	}
	ErrInvalidRecipient = &DomainError{
		Code:    CodeInvalidRecipient,
		Message: "Recipient address is required",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "Withdrawal amount exceeds dev fund balance",
	}
	ErrInvalidFeePolicy = &DomainError{
		Code:    CodeInvalidFeePolicy,
		Message: "invalid fee settings",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    CodeTransactionNotFound,
		Message: "transaction not found",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    CodeInvalidCredentials,
		Message: "invalid credentials",
	}
)

// InvalidFeePolicy returns an ErrInvalidFeePolicy variant carrying the failed rule.
func InvalidFeePolicy(reason string) *DomainError {
	return &DomainError{
		Code:    CodeInvalidFeePolicy,
		Message: "invalid fee settings: " + reason,
	}
}

// Is reports whether target carries the same code, so errors.Is matches
// both the sentinel and derived variants such as InvalidFeePolicy.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
