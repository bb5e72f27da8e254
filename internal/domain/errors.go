package domain

import "errors"

var (
	ErrUnauthorized           = errors.New("caller is not authorized for this operation")
	ErrInvalidStateTransition = errors.New("operation not permitted in current status")
	ErrInsufficientInventory  = errors.New("insufficient inventory")
	ErrInvalidRestore         = errors.New("inventory restore exceeds sold count")
	ErrDoubleFunding          = errors.New("order already funded")
	ErrAlreadyRated           = errors.New("order already rated")
	ErrDuplicateResolution    = errors.New("dispute already resolved")
	ErrAmountMismatch         = errors.New("amount mismatch")
	ErrNotEligible            = errors.New("not eligible yet")
	ErrNotFound               = errors.New("not found")
	ErrInsufficientFunds      = errors.New("insufficient vault funds")
	ErrScoreOutOfRange        = errors.New("score must be between 1 and 5")
	ErrListingInactive        = errors.New("listing is not active")
	ErrInvalidArgument        = errors.New("invalid argument")
)
