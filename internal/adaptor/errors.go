package adaptor

import (
	"errors"
	"net/http"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError translates domain errors to HTTP responses. Anything
// without a sentinel is a server fault and keeps its detail out of the body.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, entity.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidStatus):
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, entity.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, entity.ErrNotOwner):
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrMovieNotFound),
		errors.Is(err, entity.ErrTheaterNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrReservationNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrEmailTaken),
		errors.Is(err, entity.ErrSeatUnavailable),
		errors.Is(err, entity.ErrSessionHasBookings):
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Unhandled service error", zap.Error(err), zap.String("action", action))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
