package engine

import "errors"

// Arbitration failures are sentinel errors so callers can map them with
// errors.Is. Every failure is terminal for its call and leaves the
// snapshot untouched; detail is added by wrapping.
var (
	// ErrNoProgramSelected: the acting program is missing or not a
	// concrete program (aggregate views cannot mutate the routine).
	ErrNoProgramSelected = errors.New("no concrete program selected")

	// ErrRoomNotFound: the intent names a room that does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrPastBookingDate: a supplied booking end date lies before today.
	ErrPastBookingDate = errors.New("booking end date cannot be in the past")

	// ErrMissingRequiredDate: the path requires a booking end date and
	// none was supplied.
	ErrMissingRequiredDate = errors.New("booking end date is required")

	// ErrNotAuthorized: the acting program may not resolve this request.
	ErrNotAuthorized = errors.New("not authorized to resolve this request")

	// ErrConflict: the cell is already held by a different program.
	ErrConflict = errors.New("slot is already assigned to another program")

	// ErrRequestNotFound: no request with the given id exists.
	ErrRequestNotFound = errors.New("assignment request not found")
)
