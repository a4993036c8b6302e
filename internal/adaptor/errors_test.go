package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-reservation/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid id", entity.ErrInvalidID, http.StatusBadRequest},
		{"invalid status", entity.ErrInvalidStatus, http.StatusBadRequest},
		{"bad credentials", entity.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owner", entity.ErrNotOwner, http.StatusForbidden},
		{"movie missing", entity.ErrMovieNotFound, http.StatusNotFound},
		{"session missing", entity.ErrSessionNotFound, http.StatusNotFound},
		{"reservation missing", entity.ErrReservationNotFound, http.StatusNotFound},
		{"email taken", entity.ErrEmailTaken, http.StatusConflict},
		{"seat taken", entity.ErrSeatUnavailable, http.StatusConflict},
		{"session booked", entity.ErrSessionHasBookings, http.StatusConflict},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestHandleServiceErrorUnwrapsChains(t *testing.T) {
	// Services wrap sentinels with request context; translation still works
	wrapped := fmt.Errorf("occupy 1 of 2 seats: %w", entity.ErrSeatUnavailable)

	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), wrapped, "test")
	assert.Equal(t, http.StatusConflict, rec.Code)
}
