package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/queue"
	"cinema-reservation/pkg/cache"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, identity utils.Identity, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetReservationByID(ctx context.Context, identity utils.Identity, reservationID string) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, identity utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	DeleteReservation(ctx context.Context, identity utils.Identity, reservationID string) error

	// Admin
	GetReservations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	UpdateReservationStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error)
}

type reservationService struct {
	db        database.PgxIface
	repo      *repository.Repository
	seatCache *cache.SeatMapCache
	publisher *queue.Publisher
	log       *zap.Logger
}

func NewReservationService(
	db database.PgxIface,
	repo *repository.Repository,
	seatCache *cache.SeatMapCache,
	publisher *queue.Publisher,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		db:        db,
		repo:      repo,
		seatCache: seatCache,
		publisher: publisher,
		log:       log.With(zap.String("service", "reservation")),
	}
}

// CreateReservation books seats atomically. The seat flip and the reservation
// insert share one transaction, and the flip only touches available seats, so
// two concurrent requests for the same seat cannot both succeed and a failed
// booking never leaves seats occupied.
func (s *reservationService) CreateReservation(ctx context.Context, identity utils.Identity, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session ID %s: %w", req.SessionID, entity.ErrInvalidID)
	}

	session, err := s.repo.Session.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("session %s: %w", req.SessionID, entity.ErrSessionNotFound)
	}

	refs := make([]entity.SeatRef, len(req.Seats))
	for i, seat := range req.Seats {
		refs[i] = entity.SeatRef{Row: seat.Row, Number: seat.Number}
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        identity.UserID,
		SessionID:     sessionID,
		TotalPrice:    computeTotal(session, req.Seats),
		Status:        entity.ReservationStatusConfirmed,
		PaymentMethod: req.PaymentMethod,
	}

	reservationSeats := make([]*entity.ReservationSeat, len(req.Seats))
	for i, seat := range req.Seats {
		reservationSeats[i] = &entity.ReservationSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ReservationID: reservation.ID,
			SeatRow:       seat.Row,
			SeatNumber:    seat.Number,
			FareType:      entity.FareType(seat.FareType),
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	occupied, err := s.repo.Seat.Occupy(ctx, tx, sessionID, refs)
	if err != nil {
		return nil, err
	}
	if occupied != int64(len(refs)) {
		s.log.Warn("Seat conflict",
			zap.String("session_id", req.SessionID),
			zap.Int64("occupied", occupied),
			zap.Int("requested", len(refs)))
		return nil, fmt.Errorf("occupy %d of %d seats: %w", occupied, len(refs), entity.ErrSeatUnavailable)
	}

	if err := s.repo.Reservation.Create(ctx, tx, reservation, reservationSeats); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit reservation", zap.Error(err))
		return nil, fmt.Errorf("commit reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", identity.UserID.String()),
		zap.String("session_id", req.SessionID),
		zap.Float64("total_price", reservation.TotalPrice))

	s.seatCache.Invalidate(ctx, sessionID)
	s.publisher.Publish(ctx, queue.QueueReservationConfirmed, s.event(reservation, reservationSeats))

	resp := response.ReservationToResponse(reservation, reservationSeats)
	s.enrich(ctx, session, &resp)
	return &resp, nil
}

// computeTotal sums the session fare for each seat. Half fare applies per
// seat, not per reservation.
func computeTotal(session *entity.Session, seats []request.ReservationSeatRequest) float64 {
	var total float64
	for _, seat := range seats {
		if entity.FareType(seat.FareType) == entity.FareHalf {
			total += session.HalfPrice
		} else {
			total += session.FullPrice
		}
	}
	return total
}

func (s *reservationService) GetReservationByID(ctx context.Context, identity utils.Identity, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() && reservation.UserID != identity.UserID {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, entity.ErrNotOwner)
	}

	return s.buildResponse(ctx, reservation)
}

func (s *reservationService) GetUserReservations(ctx context.Context, identity utils.Identity, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	reservations, err := s.repo.Reservation.FindByUserID(ctx, identity.UserID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	items, err := s.buildResponses(ctx, reservations)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *reservationService) GetReservations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	reservations, err := s.repo.Reservation.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Reservation.Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.buildResponses(ctx, reservations)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// UpdateReservationStatus moves a reservation between pending, confirmed and
// cancelled. Cancelling releases its session seats; leaving cancelled takes
// them again and fails like a fresh booking when they are gone. Setting the
// status it already has is a no-op.
func (s *reservationService) UpdateReservationStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	if !entity.ValidReservationStatus(req.Status) {
		return nil, fmt.Errorf("status %q: %w", req.Status, entity.ErrInvalidStatus)
	}
	target := entity.ReservationStatus(req.Status)

	reservation, err := s.find(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == target {
		return s.buildResponse(ctx, reservation)
	}

	seats, err := s.repo.Reservation.FindSeats(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	refs := seatRefs(seats)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	switch {
	case target == entity.ReservationStatusCancelled:
		released, err := s.repo.Seat.Release(ctx, tx, reservation.SessionID, refs)
		if err != nil {
			return nil, err
		}
		// Session (or some seats) may already be gone; the cancellation still
		// goes through, but leave a trace.
		if released != int64(len(refs)) {
			s.log.Warn("Released fewer seats than reserved",
				zap.String("reservation_id", reservationID),
				zap.String("session_id", reservation.SessionID.String()),
				zap.Int64("released", released),
				zap.Int("reserved", len(refs)))
		}
	case reservation.Status == entity.ReservationStatusCancelled:
		occupied, err := s.repo.Seat.Occupy(ctx, tx, reservation.SessionID, refs)
		if err != nil {
			return nil, err
		}
		if occupied != int64(len(refs)) {
			return nil, fmt.Errorf("reoccupy %d of %d seats: %w", occupied, len(refs), entity.ErrSeatUnavailable)
		}
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, tx, reservation.ID, target); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit status change", zap.Error(err))
		return nil, fmt.Errorf("commit status change: %w", err)
	}

	previous := reservation.Status
	reservation.Status = target
	reservation.UpdatedAt = time.Now()

	s.log.Info("Reservation status changed",
		zap.String("reservation_id", reservationID),
		zap.String("from", string(previous)),
		zap.String("to", string(target)))

	s.seatCache.Invalidate(ctx, reservation.SessionID)
	switch target {
	case entity.ReservationStatusConfirmed:
		s.publisher.Publish(ctx, queue.QueueReservationConfirmed, s.event(reservation, seats))
	case entity.ReservationStatusCancelled:
		s.publisher.Publish(ctx, queue.QueueReservationCancelled, s.event(reservation, seats))
	}

	resp := response.ReservationToResponse(reservation, seats)
	if session, err := s.repo.Session.FindByID(ctx, reservation.SessionID); err == nil && session != nil {
		s.enrich(ctx, session, &resp)
	}
	return &resp, nil
}

// DeleteReservation removes a reservation entirely. Seats still held by it
// are released first so the session seat map stays consistent.
func (s *reservationService) DeleteReservation(ctx context.Context, identity utils.Identity, reservationID string) error {
	reservation, err := s.find(ctx, reservationID)
	if err != nil {
		return err
	}

	if !identity.IsAdmin() && reservation.UserID != identity.UserID {
		return fmt.Errorf("reservation %s: %w", reservationID, entity.ErrNotOwner)
	}

	seats, err := s.repo.Reservation.FindSeats(ctx, reservation.ID)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if reservation.Status != entity.ReservationStatusCancelled {
		if _, err := s.repo.Seat.Release(ctx, tx, reservation.SessionID, seatRefs(seats)); err != nil {
			return err
		}
	}

	if err := s.repo.Reservation.Delete(ctx, tx, reservation.ID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit reservation deletion", zap.Error(err))
		return fmt.Errorf("commit reservation deletion: %w", err)
	}

	s.log.Info("Reservation deleted",
		zap.String("reservation_id", reservationID),
		zap.String("user_id", reservation.UserID.String()))

	s.seatCache.Invalidate(ctx, reservation.SessionID)
	if reservation.Status != entity.ReservationStatusCancelled {
		reservation.Status = entity.ReservationStatusCancelled
		s.publisher.Publish(ctx, queue.QueueReservationCancelled, s.event(reservation, seats))
	}

	return nil
}

func (s *reservationService) find(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("reservation ID %s: %w", reservationID, entity.ErrInvalidID)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, entity.ErrReservationNotFound)
	}

	return reservation, nil
}

func (s *reservationService) buildResponse(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	seats, err := s.repo.Reservation.FindSeats(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation, seats)
	if session, err := s.repo.Session.FindByID(ctx, reservation.SessionID); err == nil && session != nil {
		s.enrich(ctx, session, &resp)
	}
	return &resp, nil
}

func (s *reservationService) buildResponses(ctx context.Context, reservations []*entity.Reservation) ([]response.ReservationResponse, error) {
	items := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		resp, err := s.buildResponse(ctx, reservation)
		if err != nil {
			return nil, err
		}
		items[i] = *resp
	}
	return items, nil
}

// enrich adds movie, theater and showtime context. Failed lookups leave the
// fields empty.
func (s *reservationService) enrich(ctx context.Context, session *entity.Session, resp *response.ReservationResponse) {
	datetime := session.Datetime
	resp.Datetime = &datetime
	if movie, err := s.repo.Movie.FindByID(ctx, session.MovieID); err == nil && movie != nil {
		resp.MovieTitle = movie.Title
	}
	if theater, err := s.repo.Theater.FindByID(ctx, session.TheaterID); err == nil && theater != nil {
		resp.TheaterName = theater.Name
	}
}

func (s *reservationService) event(reservation *entity.Reservation, seats []*entity.ReservationSeat) queue.ReservationEvent {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatNumber)
	}

	return queue.ReservationEvent{
		ReservationID: reservation.ID.String(),
		UserID:        reservation.UserID.String(),
		SessionID:     reservation.SessionID.String(),
		Seats:         labels,
		TotalPrice:    reservation.TotalPrice,
		Status:        string(reservation.Status),
		OccurredAt:    time.Now(),
	}
}

func seatRefs(seats []*entity.ReservationSeat) []entity.SeatRef {
	refs := make([]entity.SeatRef, len(seats))
	for i, seat := range seats {
		refs[i] = entity.SeatRef{Row: seat.SeatRow, Number: seat.SeatNumber}
	}
	return refs
}
