package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/queue"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds the service graph and mounts every route on one router.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	seatCache *cache.SeatMapCache,
	publisher *queue.Publisher,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(db, repo, config, seatCache, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, config, logger),
	}
}

func setupRouter(handler *adaptor.Handler, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wireMovie(r, handler.Movie, config, logger)
	wireTheater(r, handler.Theater, config, logger)
	wireSession(r, handler.Session, config, logger)
	wireReservation(r, handler.Reservation, config, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
