// Package queue defines message payloads published to the message broker.
package queue

import "time"

const (
	QueueReservationConfirmed = "reservation.confirmed"
	QueueReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a booking mutation commits. It carries
// enough for downstream consumers (notifications, analytics) to act without
// querying the primary database.
type ReservationEvent struct {
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	SessionID     string    `json:"session_id"`
	Seats         []string  `json:"seats"` // A1, A2, ...
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
