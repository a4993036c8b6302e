package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Movie       MovieRepository
	Theater     TheaterRepository
	Session     SessionRepository
	Seat        SeatRepository
	Reservation ReservationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Theater:     NewTheaterRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Reservation: NewReservationRepository(db, log),
	}
}
