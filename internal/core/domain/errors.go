package domain

import "errors"

// Business failures are values, resolved into structured outcomes at the
// component boundary; they are never allowed to escape as panics or raw
// storage errors.
var (
	// ErrSignatureInvalid means the gateway callback failed HMAC
	// verification. Always fatal to the callback, before any state change.
	ErrSignatureInvalid = errors.New("gateway: invalid signature")

	// ErrOrderInfoMalformed means the order reference payload is missing
	// required fields or cannot be parsed.
	ErrOrderInfoMalformed = errors.New("gateway: malformed order info")

	// ErrNotFound means a referenced event, seat, ticket or report does
	// not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrStateConflict means an entity is not in the source state a
	// transition requires.
	ErrStateConflict = errors.New("state conflict")

	// ErrSeatTaken means a seat-exclusivity race was lost: the storage
	// layer's uniqueness constraint rejected the transition. Expected and
	// handled, not a bug.
	ErrSeatTaken = errors.New("seat already booked")

	// ErrInsufficientFunds means a guarded wallet debit affected zero rows.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)
