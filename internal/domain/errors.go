package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrWalletNotFound    = errors.New("wallet_not_found")
	ErrInsufficientCoins = errors.New("insufficient_coins")
	ErrInsufficientFiat  = errors.New("insufficient_fiat")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
