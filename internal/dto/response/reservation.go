package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type ReservationSeatResponse struct {
	Row      string `json:"row"`
	Number   int    `json:"number"`
	FareType string `json:"fare_type"`
}

type ReservationResponse struct {
	ID            string                    `json:"id"`
	UserID        string                    `json:"user_id"`
	SessionID     string                    `json:"session_id"`
	MovieTitle    string                    `json:"movie_title,omitempty"`
	TheaterName   string                    `json:"theater_name,omitempty"`
	Datetime      *time.Time                `json:"datetime,omitempty"`
	Seats         []ReservationSeatResponse `json:"seats"`
	TotalPrice    float64                   `json:"total_price"`
	Status        entity.ReservationStatus  `json:"status"`
	PaymentMethod string                    `json:"payment_method"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func ReservationSeatToResponse(seat *entity.ReservationSeat) ReservationSeatResponse {
	return ReservationSeatResponse{
		Row:      seat.SeatRow,
		Number:   seat.SeatNumber,
		FareType: string(seat.FareType),
	}
}

func ReservationToResponse(reservation *entity.Reservation, seats []*entity.ReservationSeat) ReservationResponse {
	seatResponses := make([]ReservationSeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = ReservationSeatToResponse(seat)
	}

	return ReservationResponse{
		ID:            reservation.ID.String(),
		UserID:        reservation.UserID.String(),
		SessionID:     reservation.SessionID.String(),
		Seats:         seatResponses,
		TotalPrice:    reservation.TotalPrice,
		Status:        reservation.Status,
		PaymentMethod: reservation.PaymentMethod,
		CreatedAt:     reservation.CreatedAt,
	}
}
