package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, q database.Querier, seats []*entity.Seat) error
	FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error)
	DeleteBySessionID(ctx context.Context, q database.Querier, sessionID uuid.UUID) error

	// Occupy and Release are conditional multi-row updates. The returned count
	// is the number of seats actually flipped; the booking flow compares it to
	// the requested count and rolls back on mismatch, so two concurrent
	// requests can never both take the same seat.
	Occupy(ctx context.Context, q database.Querier, sessionID uuid.UUID, seats []entity.SeatRef) (int64, error)
	Release(ctx context.Context, q database.Querier, sessionID uuid.UUID, seats []entity.SeatRef) (int64, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, q database.Querier, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `
		INSERT INTO session_seats (id, session_id, seat_row, seat_number, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, seat := range seats {
		_, err := q.Exec(ctx, query,
			seat.ID,
			seat.SessionID,
			seat.SeatRow,
			seat.SeatNumber,
			seat.Status,
			seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create seat",
				zap.Error(err),
				zap.String("session_id", seat.SessionID.String()),
				zap.String("seat", fmt.Sprintf("%s%d", seat.SeatRow, seat.SeatNumber)),
			)
			return fmt.Errorf("create seat %s%d: %w", seat.SeatRow, seat.SeatNumber, err)
		}
	}

	return nil
}

func (r *seatRepository) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, session_id, seat_row, seat_number, status, created_at
		FROM session_seats
		WHERE session_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find seats by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find seats by session ID %s: %w", sessionID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.SessionID,
			&seat.SeatRow,
			&seat.SeatNumber,
			&seat.Status,
			&seat.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) DeleteBySessionID(ctx context.Context, q database.Querier, sessionID uuid.UUID) error {
	query := `DELETE FROM session_seats WHERE session_id = $1`

	_, err := q.Exec(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to delete seats by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return fmt.Errorf("delete seats by session ID %s: %w", sessionID.String(), err)
	}

	return nil
}

// seatArrays splits refs into parallel arrays for the unnest join.
func seatArrays(seats []entity.SeatRef) ([]string, []int32) {
	seatRows := make([]string, len(seats))
	seatNumbers := make([]int32, len(seats))
	for i, ref := range seats {
		seatRows[i] = ref.Row
		seatNumbers[i] = int32(ref.Number)
	}
	return seatRows, seatNumbers
}

func (r *seatRepository) Occupy(ctx context.Context, q database.Querier, sessionID uuid.UUID, seats []entity.SeatRef) (int64, error) {
	if len(seats) == 0 {
		return 0, nil
	}

	// Single conditional statement: a seat is flipped only if it is still
	// available, so the row count tells the caller whether every requested
	// seat was won.
	query := `
		UPDATE session_seats AS s
		SET status = 'occupied'
		FROM (SELECT unnest($2::text[]) AS seat_row, unnest($3::int[]) AS seat_number) AS req
		WHERE s.session_id = $1
		  AND s.seat_row = req.seat_row
		  AND s.seat_number = req.seat_number
		  AND s.status = 'available'
	`

	seatRows, seatNumbers := seatArrays(seats)

	result, err := q.Exec(ctx, query, sessionID, seatRows, seatNumbers)
	if err != nil {
		r.log.Error("Failed to occupy seats",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
			zap.Int("requested", len(seats)),
		)
		return 0, fmt.Errorf("occupy seats in session %s: %w", sessionID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *seatRepository) Release(ctx context.Context, q database.Querier, sessionID uuid.UUID, seats []entity.SeatRef) (int64, error) {
	if len(seats) == 0 {
		return 0, nil
	}

	query := `
		UPDATE session_seats AS s
		SET status = 'available'
		FROM (SELECT unnest($2::text[]) AS seat_row, unnest($3::int[]) AS seat_number) AS req
		WHERE s.session_id = $1
		  AND s.seat_row = req.seat_row
		  AND s.seat_number = req.seat_number
		  AND s.status = 'occupied'
	`

	seatRows, seatNumbers := seatArrays(seats)

	result, err := q.Exec(ctx, query, sessionID, seatRows, seatNumbers)
	if err != nil {
		r.log.Error("Failed to release seats",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
			zap.Int("requested", len(seats)),
		)
		return 0, fmt.Errorf("release seats in session %s: %w", sessionID.String(), err)
	}

	return result.RowsAffected(), nil
}
