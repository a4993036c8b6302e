package entity

import "errors"

// Domain error sentinels. Services return these (possibly wrapped) and the
// HTTP boundary translates each kind to a status code, so no layer matches
// on error strings.
var (
	ErrInvalidID = errors.New("invalid identifier")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrMovieNotFound      = errors.New("movie not found")
	ErrTheaterNotFound    = errors.New("theater not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionHasBookings = errors.New("session has active reservations")

	ErrReservationNotFound = errors.New("reservation not found")
	ErrSeatUnavailable     = errors.New("seat not available")
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrNotOwner            = errors.New("not authorized for this reservation")
)
