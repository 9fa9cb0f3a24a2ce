package repository

import "errors"

// Business outcomes surfaced by the repositories. Services pass these
// through unchanged; handlers translate them to HTTP status codes.
var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrShowNotFound      = errors.New("show not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrSeatTaken         = errors.New("seat is already booked for this show")
	ErrShowFull          = errors.New("show is fully booked")
	ErrNotOwner          = errors.New("booking belongs to another user")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrShowStarted       = errors.New("show has already started")
	ErrInvalidSeatNumber = errors.New("invalid seat number format")
)
