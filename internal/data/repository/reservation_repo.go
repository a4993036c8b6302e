package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, q database.Querier, reservation *entity.Reservation, seats []*entity.ReservationSeat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindSeats(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationSeat, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error
	Delete(ctx context.Context, q database.Querier, id uuid.UUID) error
	ExistsActiveBySessionID(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// Create inserts the reservation and its seats. It takes a Querier so the
// booking flow can run it inside the same transaction as the seat occupation.
func (r *reservationRepository) Create(ctx context.Context, q database.Querier, reservation *entity.Reservation, seats []*entity.ReservationSeat) error {
	query := `
		INSERT INTO reservations (id, user_id, session_id, total_price, status, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.SessionID,
		reservation.TotalPrice,
		reservation.Status,
		reservation.PaymentMethod,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("session_id", reservation.SessionID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	seatQuery := `
		INSERT INTO reservation_seats (id, reservation_id, seat_row, seat_number, fare_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, seat := range seats {
		_, err := q.Exec(ctx, seatQuery,
			seat.ID,
			seat.ReservationID,
			seat.SeatRow,
			seat.SeatNumber,
			seat.FareType,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create reservation seat",
				zap.Error(err),
				zap.String("reservation_id", seat.ReservationID.String()),
				zap.String("seat", fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatNumber)),
			)
			return fmt.Errorf("create reservation seat %s%d: %w", seat.SeatRow, seat.SeatNumber, err)
		}
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, user_id, session_id, total_price, status, payment_method, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.SessionID,
		&reservation.TotalPrice,
		&reservation.Status,
		&reservation.PaymentMethod,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindSeats(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationSeat, error) {
	query := `
		SELECT id, reservation_id, seat_row, seat_number, fare_type, created_at
		FROM reservation_seats
		WHERE reservation_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find reservation seats",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find reservation seats %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.ReservationSeat
	for rows.Next() {
		var seat entity.ReservationSeat
		err := rows.Scan(
			&seat.ID,
			&seat.ReservationID,
			&seat.SeatRow,
			&seat.SeatNumber,
			&seat.FareType,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation seat row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, session_id, total_price, status, payment_method, created_at, updated_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, user_id, session_id, total_price, status, payment_method, created_at, updated_at
		FROM reservations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update reservation %s: %w", id.String(), entity.ErrReservationNotFound)
	}

	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM reservation_seats WHERE reservation_id = $1`, id); err != nil {
		r.log.Error("Failed to delete reservation seats",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation seats %s: %w", id.String(), err)
	}

	result, err := q.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete reservation %s: %w", id.String(), entity.ErrReservationNotFound)
	}

	r.log.Info("Reservation deleted", zap.String("reservation_id", id.String()))
	return nil
}

// ExistsActiveBySessionID reports whether any non-cancelled reservation still
// references the session. Session deletion is refused while this holds.
func (r *reservationRepository) ExistsActiveBySessionID(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reservations WHERE session_id = $1 AND status != 'cancelled')`

	var exists bool
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check active reservations",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return false, fmt.Errorf("check active reservations for session %s: %w", sessionID.String(), err)
	}

	return exists, nil
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.SessionID,
			&reservation.TotalPrice,
			&reservation.Status,
			&reservation.PaymentMethod,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}
