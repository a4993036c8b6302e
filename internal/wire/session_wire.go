package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/sessions", sessionHandler.GetSessions)
	r.Get("/api/sessions/{id}", sessionHandler.GetSessionByID)
	r.Get("/api/sessions/{id}/seats", sessionHandler.GetSeatMap)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, log))
		r.Use(middleware.RequireRole(log, "admin"))

		r.Post("/api/sessions", sessionHandler.CreateSession)
		r.Put("/api/sessions/{id}", sessionHandler.UpdateSession)
		r.Delete("/api/sessions/{id}", sessionHandler.DeleteSession)
	})
}
