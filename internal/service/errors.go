package service

import "errors"

// Validation failures. Handlers map these to 4xx responses; nothing here is
// fatal and every one is recoverable by retrying the triggering action.
var (
	ErrInvalidCurrency     = errors.New("unsupported settlement currency")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrCurrencyMismatch    = errors.New("wallet currency does not match cart currency")
	ErrTierLocked          = errors.New("content locked for current tier")
	ErrBoxAlreadyOpened    = errors.New("mystery box already opened")
	ErrUnknownPlan         = errors.New("unknown subscription plan")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
