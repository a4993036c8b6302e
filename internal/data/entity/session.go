package entity

import (
	"time"

	"github.com/google/uuid"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatOccupied  SeatStatus = "occupied"
)

// Session is one scheduled showing of a movie in a theater. Its seat map is
// shared mutable state across reservations and only the booking flow may
// change seat statuses.
type Session struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	TheaterID uuid.UUID `db:"theater_id"`
	Datetime  time.Time `db:"datetime"`
	FullPrice float64   `db:"full_price"`
	HalfPrice float64   `db:"half_price"`
}

// Seat is one (row, number) position in a session's seat map.
// (session_id, seat_row, seat_number) is unique.
type Seat struct {
	BaseSimple
	SessionID  uuid.UUID  `db:"session_id"`
	SeatRow    string     `db:"seat_row"`    // A, B, C, ...
	SeatNumber int        `db:"seat_number"` // 1, 2, 3, ...
	Status     SeatStatus `db:"status"`
}

// SeatRef identifies a seat within a session without its status.
type SeatRef struct {
	Row    string
	Number int
}
