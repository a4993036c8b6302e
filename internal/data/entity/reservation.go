package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ValidReservationStatus reports whether s is one of the three lifecycle states.
func ValidReservationStatus(s string) bool {
	switch ReservationStatus(s) {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCancelled:
		return true
	}
	return false
}

type FareType string

const (
	FareFull FareType = "full"
	FareHalf FareType = "half"
)

// Reservation links a user, a session and a set of seats. The seat list is
// immutable after creation; cancelling releases the session seats back.
type Reservation struct {
	Base
	UserID        uuid.UUID         `db:"user_id"`
	SessionID     uuid.UUID         `db:"session_id"`
	TotalPrice    float64           `db:"total_price"`
	Status        ReservationStatus `db:"status"`
	PaymentMethod string            `db:"payment_method"`
}

// ReservationSeat is one booked seat with the fare tier applied at creation.
type ReservationSeat struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatRow       string    `db:"seat_row"`
	SeatNumber    int       `db:"seat_number"`
	FareType      FareType  `db:"fare_type"`
}
