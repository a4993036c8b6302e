package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// GetSessions handles GET /api/sessions with optional movie_id, theater_id
// and date filters.
func (h *SessionHandler) GetSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sessions, err := h.service.GetSessions(
		r.Context(),
		paginationFromQuery(r),
		query.Get("movie_id"),
		query.Get("theater_id"),
		query.Get("date"),
	)
	if err != nil {
		handleServiceError(w, h.log, err, "get sessions")
		return
	}

	utils.ResponseSuccess(w, "Sessions retrieved successfully", sessions)
}

// GetSessionByID handles GET /api/sessions/{id}
func (h *SessionHandler) GetSessionByID(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.GetSessionByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get session by ID")
		return
	}

	utils.ResponseSuccess(w, "Session retrieved successfully", session)
}

// GetSeatMap handles GET /api/sessions/{id}/seats
func (h *SessionHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.GetSeatMap(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "Seat map retrieved successfully", seats)
}

// CreateSession handles POST /api/sessions (admin)
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create session")
		return
	}

	utils.ResponseCreated(w, "Session created successfully", session)
}

// UpdateSession handles PUT /api/sessions/{id} (admin)
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	session, err := h.service.UpdateSession(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update session")
		return
	}

	utils.ResponseSuccess(w, "Session updated successfully", session)
}

// DeleteSession handles DELETE /api/sessions/{id} (admin)
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete session")
		return
	}

	utils.ResponseSuccess(w, "Session deleted successfully", nil)
}
