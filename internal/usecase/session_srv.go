package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultSeatsPerRow = 10

type SessionService interface {
	GetSessions(ctx context.Context, req *request.PaginatedRequest, movieID, theaterID, date string) (*response.PaginatedResponse[response.SessionResponse], error)
	GetSessionByID(ctx context.Context, sessionID string) (*response.SessionResponse, error)
	GetSeatMap(ctx context.Context, sessionID string) ([]response.SeatResponse, error)

	// Admin
	CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error)
	UpdateSession(ctx context.Context, sessionID string, req *request.UpdateSessionRequest) (*response.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type sessionService struct {
	db        database.PgxIface
	repo      *repository.Repository
	seatCache *cache.SeatMapCache
	log       *zap.Logger
}

func NewSessionService(db database.PgxIface, repo *repository.Repository, seatCache *cache.SeatMapCache, log *zap.Logger) SessionService {
	return &sessionService{
		db:        db,
		repo:      repo,
		seatCache: seatCache,
		log:       log.With(zap.String("service", "session")),
	}
}

func (s *sessionService) GetSessions(ctx context.Context, req *request.PaginatedRequest, movieID, theaterID, date string) (*response.PaginatedResponse[response.SessionResponse], error) {
	var filter repository.SessionFilter

	if movieID != "" {
		id, err := uuid.Parse(movieID)
		if err != nil {
			return nil, fmt.Errorf("movie ID %s: %w", movieID, entity.ErrInvalidID)
		}
		filter.MovieID = &id
	}
	if theaterID != "" {
		id, err := uuid.Parse(theaterID)
		if err != nil {
			return nil, fmt.Errorf("theater ID %s: %w", theaterID, entity.ErrInvalidID)
		}
		filter.TheaterID = &id
	}
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("date %s: %w", date, entity.ErrInvalidID)
		}
		filter.Date = &day
	}

	sessions, err := s.repo.Session.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Session.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	sessionResponses := make([]response.SessionResponse, len(sessions))
	for i, session := range sessions {
		sessionResponses[i] = response.SessionToResponse(session)
	}

	return response.NewPaginatedResponse(sessionResponses, req.Page, req.PerPage, total), nil
}

func (s *sessionService) GetSessionByID(ctx context.Context, sessionID string) (*response.SessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session ID %s: %w", sessionID, entity.ErrInvalidID)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, entity.ErrSessionNotFound)
	}

	resp := response.SessionToResponse(session)
	s.enrich(ctx, session, &resp)

	seats, err := s.seatMap(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.Seats = seats

	return &resp, nil
}

func (s *sessionService) GetSeatMap(ctx context.Context, sessionID string) ([]response.SeatResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session ID %s: %w", sessionID, entity.ErrInvalidID)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, entity.ErrSessionNotFound)
	}

	return s.seatMap(ctx, id)
}

// seatMap reads the seat map through the cache. A cache miss or a stale
// payload falls through to the database and refills the entry.
func (s *sessionService) seatMap(ctx context.Context, sessionID uuid.UUID) ([]response.SeatResponse, error) {
	if payload, ok := s.seatCache.Get(ctx, sessionID); ok {
		var cached []response.SeatResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		s.log.Warn("Discarding malformed seat map cache entry",
			zap.String("session_id", sessionID.String()))
	}

	seats, err := s.repo.Seat.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	seatResponses := make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		seatResponses[i] = response.SeatToResponse(seat)
	}

	if payload, err := json.Marshal(seatResponses); err == nil {
		s.seatCache.Set(ctx, sessionID, payload)
	}

	return seatResponses, nil
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error) {
	datetime, err := time.Parse(time.RFC3339, req.Datetime)
	if err != nil {
		return nil, fmt.Errorf("datetime %s: %w", req.Datetime, entity.ErrInvalidID)
	}

	movieID, _ := uuid.Parse(req.MovieID)
	theaterID, _ := uuid.Parse(req.TheaterID)

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, entity.ErrMovieNotFound)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", req.TheaterID, entity.ErrTheaterNotFound)
	}

	now := time.Now()
	session := &entity.Session{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		TheaterID: theaterID,
		Datetime:  datetime,
		FullPrice: req.FullPrice,
		HalfPrice: req.HalfPrice,
	}

	seats := generateSeatMap(session.ID, theater.Capacity, req.Rows, req.SeatsPerRow, now)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Session.Create(ctx, tx, session); err != nil {
		return nil, err
	}
	if err := s.repo.Seat.CreateBatch(ctx, tx, seats); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit session creation", zap.Error(err))
		return nil, fmt.Errorf("commit session creation: %w", err)
	}

	s.log.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("theater_id", req.TheaterID),
		zap.Int("seats", len(seats)))

	resp := response.SessionToResponse(session)
	resp.MovieTitle = movie.Title
	resp.TheaterName = theater.Name
	resp.Seats = make([]response.SeatResponse, len(seats))
	for i, seat := range seats {
		resp.Seats[i] = response.SeatToResponse(seat)
	}

	return &resp, nil
}

// generateSeatMap lays seats out as lettered rows. When the request does not
// fix a layout, rows of ten are cut from the theater capacity, with a short
// last row for the remainder.
func generateSeatMap(sessionID uuid.UUID, capacity, rows, seatsPerRow int, now time.Time) []*entity.Seat {
	total := capacity
	if rows > 0 {
		if seatsPerRow == 0 {
			seatsPerRow = defaultSeatsPerRow
		}
		total = rows * seatsPerRow
	} else {
		seatsPerRow = defaultSeatsPerRow
	}

	seats := make([]*entity.Seat, 0, total)
	for i := 0; i < total; i++ {
		row := i / seatsPerRow
		seats = append(seats, &entity.Seat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			SessionID:  sessionID,
			SeatRow:    rowLabel(row),
			SeatNumber: i%seatsPerRow + 1,
			Status:     entity.SeatAvailable,
		})
	}

	return seats
}

// rowLabel maps 0..* to A..Z, AA..AZ and so on.
func rowLabel(row int) string {
	label := string(rune('A' + row%26))
	for row = row/26 - 1; row >= 0; row = row/26 - 1 {
		label = string(rune('A'+row%26)) + label
	}
	return label
}

func (s *sessionService) UpdateSession(ctx context.Context, sessionID string, req *request.UpdateSessionRequest) (*response.SessionResponse, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session ID %s: %w", sessionID, entity.ErrInvalidID)
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, entity.ErrSessionNotFound)
	}

	if req.MovieID != nil {
		movieID, _ := uuid.Parse(*req.MovieID)
		movie, err := s.repo.Movie.FindByID(ctx, movieID)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, fmt.Errorf("movie %s: %w", *req.MovieID, entity.ErrMovieNotFound)
		}
		session.MovieID = movieID
	}
	if req.TheaterID != nil {
		theaterID, _ := uuid.Parse(*req.TheaterID)
		theater, err := s.repo.Theater.FindByID(ctx, theaterID)
		if err != nil {
			return nil, err
		}
		if theater == nil {
			return nil, fmt.Errorf("theater %s: %w", *req.TheaterID, entity.ErrTheaterNotFound)
		}
		session.TheaterID = theaterID
	}
	if req.Datetime != nil {
		datetime, err := time.Parse(time.RFC3339, *req.Datetime)
		if err != nil {
			return nil, fmt.Errorf("datetime %s: %w", *req.Datetime, entity.ErrInvalidID)
		}
		session.Datetime = datetime
	}
	if req.FullPrice != nil {
		session.FullPrice = *req.FullPrice
	}
	if req.HalfPrice != nil {
		session.HalfPrice = *req.HalfPrice
	}
	session.UpdatedAt = time.Now()

	if err := s.repo.Session.Update(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("Session updated", zap.String("session_id", sessionID))

	resp := response.SessionToResponse(session)
	s.enrich(ctx, session, &resp)
	return &resp, nil
}

// DeleteSession removes a session and its seat map. Sessions with pending or
// confirmed reservations are refused so bookings never point at nothing.
func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("session ID %s: %w", sessionID, entity.ErrInvalidID)
	}

	active, err := s.repo.Reservation.ExistsActiveBySessionID(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return fmt.Errorf("delete session %s: %w", sessionID, entity.ErrSessionHasBookings)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.Seat.DeleteBySessionID(ctx, tx, id); err != nil {
		return err
	}
	if err := s.repo.Session.Delete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit session deletion", zap.Error(err))
		return fmt.Errorf("commit session deletion: %w", err)
	}

	s.seatCache.Invalidate(ctx, id)
	return nil
}

// enrich fills movie and theater names on a session response. Lookup failures
// leave the fields empty rather than failing the request.
func (s *sessionService) enrich(ctx context.Context, session *entity.Session, resp *response.SessionResponse) {
	if movie, err := s.repo.Movie.FindByID(ctx, session.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	if theater, err := s.repo.Theater.FindByID(ctx, session.TheaterID); err == nil && theater != nil {
		resp.TheaterName = theater.Name
	}
}
