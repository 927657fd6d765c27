package booking

import "errors"

var (
	ErrUnauthenticated  = errors.New("log in required")
	ErrInvalidDate      = errors.New("invalid visit date")
	ErrInvalidCategory  = errors.New("invalid visitor category")
	ErrUnknownPlace     = errors.New("unknown place")
	ErrDuplicateBooking = errors.New("booking already exists for this place and date")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("booking belongs to another user")
	ErrTransient        = errors.New("booking store temporarily unavailable")
)

// ErrCodeUnavailable is reported on a single ticket whose scannable code
// could not be derived. It never fails a whole listing.
var ErrCodeUnavailable = errors.New("code unavailable")

// IsRetryable reports whether the operation may be retried as is. Callers
// should re-list before retrying a Reserve, since the outcome is unknown.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
