package storage

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingExists   = errors.New("booking already exists")
	ErrUnavailable     = errors.New("storage unavailable")
)
