package domain

import "errors"

// Typed failures returned by the ledger. Handlers map these to HTTP status
// codes with errors.Is; nothing below the HTTP layer looks at status codes.
var (
	// ErrBedNotFound: the referenced bed does not exist.
	ErrBedNotFound = errors.New("bed not found")

	// ErrWardNotFound: the referenced ward does not exist.
	ErrWardNotFound = errors.New("ward not found")

	// ErrBedUnavailable: booking precondition failed, the bed is not
	// available. Distinct from ErrBedNotFound so callers can retry against a
	// different bed.
	ErrBedUnavailable = errors.New("bed is not available")

	// ErrInvalidStatus: status value outside {available, occupied,
	// maintenance}, or an illegal transition target. Rejected before any
	// store access.
	ErrInvalidStatus = errors.New("invalid bed status")

	// ErrInvalidPatient: missing or malformed patient fields. Rejected
	// before any store access.
	ErrInvalidPatient = errors.New("patient name, age, contact and medical reason are required")

	// ErrStoreUnavailable: transient store failure. Reads may be retried;
	// a booking must not be blindly retried because the first attempt may
	// have committed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
