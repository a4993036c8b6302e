package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))

		r.Post("/api/reservations", reservationHandler.CreateReservation)
		r.Get("/api/reservations/{id}", reservationHandler.GetReservationByID)
		r.Delete("/api/reservations/{id}", reservationHandler.DeleteReservation)
		r.Get("/api/user/reservations", reservationHandler.GetUserReservations)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, "admin"))

		r.Get("/api/reservations", reservationHandler.GetReservations)
		r.Put("/api/reservations/{id}/status", reservationHandler.UpdateReservationStatus)
	})
}
