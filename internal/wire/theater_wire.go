package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTheater(
	r chi.Router,
	theaterHandler *adaptor.TheaterHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/theaters", theaterHandler.GetTheaters)
	r.Get("/api/theaters/{id}", theaterHandler.GetTheaterByID)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, "admin"))

		r.Post("/api/theaters", theaterHandler.CreateTheater)
		r.Put("/api/theaters/{id}", theaterHandler.UpdateTheater)
		r.Delete("/api/theaters/{id}", theaterHandler.DeleteTheater)
	})
}
