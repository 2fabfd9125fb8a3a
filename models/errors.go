package models

import "errors"

// Business-rule violations surfaced to the HTTP layer. Handlers map these
// with errors.Is; anything outside this list is treated as a storage fault.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrInvalidTimestamp     = errors.New("invalid timestamp")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInsufficientFilament = errors.New("insufficient filament remaining")
	ErrSessionClosed        = errors.New("session is not open")
	ErrMissingCashAmount    = errors.New("cash received is required for cash payments")
	ErrInsufficientCash     = errors.New("cash received is less than the total price")
)
