package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/queue"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Theater     TheaterService
	Session     SessionService
	Reservation ReservationService
}

func NewService(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	seatCache *cache.SeatMapCache,
	publisher *queue.Publisher,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(repo.User, config, log),
		User:        NewUserService(repo.User, log),
		Movie:       NewMovieService(repo.Movie, log),
		Theater:     NewTheaterService(repo.Theater, log),
		Session:     NewSessionService(db, repo, seatCache, log),
		Reservation: NewReservationService(db, repo, seatCache, publisher, log),
	}
}
