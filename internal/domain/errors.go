package domain

import "errors"

// Mutators treat unknown ids as silent no-ops, so there are no
// not-found sentinels; every error here is a validation failure.
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidRate      = errors.New("currency rate must be positive")
	ErrInvalidBaseRate  = errors.New("base currency rate must be 1")
	ErrUnknownCurrency  = errors.New("unknown currency code")
	ErrBaseCurrency     = errors.New("base currency cannot be removed")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
)
