package response

import (
	"time"

	"cinema-reservation/internal/data/entity"
)

type SeatResponse struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type SessionResponse struct {
	ID          string         `json:"id"`
	MovieID     string         `json:"movie_id"`
	MovieTitle  string         `json:"movie_title,omitempty"`
	TheaterID   string         `json:"theater_id"`
	TheaterName string         `json:"theater_name,omitempty"`
	Datetime    time.Time      `json:"datetime"`
	FullPrice   float64        `json:"full_price"`
	HalfPrice   float64        `json:"half_price"`
	Seats       []SeatResponse `json:"seats,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		Row:    seat.SeatRow,
		Number: seat.SeatNumber,
		Status: string(seat.Status),
	}
}

func SessionToResponse(session *entity.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		MovieID:   session.MovieID.String(),
		TheaterID: session.TheaterID.String(),
		Datetime:  session.Datetime,
		FullPrice: session.FullPrice,
		HalfPrice: session.HalfPrice,
		CreatedAt: session.CreatedAt,
	}
}
