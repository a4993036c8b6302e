package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionFilter narrows session listings. Nil fields are ignored.
type SessionFilter struct {
	MovieID   *uuid.UUID
	TheaterID *uuid.UUID
	Date      *time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, q database.Querier, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindAll(ctx context.Context, filter SessionFilter, limit, offset int) ([]*entity.Session, error)
	Count(ctx context.Context, filter SessionFilter) (int64, error)
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, q database.Querier, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

// Create inserts the session row. It takes a Querier so that session and seat
// map are created in one transaction.
func (r *sessionRepository) Create(ctx context.Context, q database.Querier, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, movie_id, theater_id, datetime, full_price, half_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		session.ID,
		session.MovieID,
		session.TheaterID,
		session.Datetime,
		session.FullPrice,
		session.HalfPrice,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("theater_id", session.TheaterID.String()),
		)
		return fmt.Errorf("create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, movie_id, theater_id, datetime, full_price, half_price, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	var session entity.Session
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.MovieID,
		&session.TheaterID,
		&session.Datetime,
		&session.FullPrice,
		&session.HalfPrice,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find session by ID %s: %w", id.String(), err)
	}

	return &session, nil
}

// filterClause builds the WHERE clause shared by FindAll and Count.
func filterClause(filter SessionFilter, args []any) (string, []any) {
	clause := ""
	if filter.MovieID != nil {
		args = append(args, *filter.MovieID)
		clause += fmt.Sprintf(" AND movie_id = $%d", len(args))
	}
	if filter.TheaterID != nil {
		args = append(args, *filter.TheaterID)
		clause += fmt.Sprintf(" AND theater_id = $%d", len(args))
	}
	if filter.Date != nil {
		dayStart := filter.Date.Truncate(24 * time.Hour)
		args = append(args, dayStart)
		clause += fmt.Sprintf(" AND datetime >= $%d", len(args))
		args = append(args, dayStart.Add(24*time.Hour))
		clause += fmt.Sprintf(" AND datetime < $%d", len(args))
	}
	return clause, args
}

func (r *sessionRepository) FindAll(ctx context.Context, filter SessionFilter, limit, offset int) ([]*entity.Session, error) {
	args := []any{limit, offset}
	clause, args := filterClause(filter, args)

	query := `
		SELECT id, movie_id, theater_id, datetime, full_price, half_price, created_at, updated_at
		FROM sessions
		WHERE 1=1` + clause + `
		ORDER BY datetime
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find sessions",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*entity.Session
	for rows.Next() {
		var session entity.Session
		err := rows.Scan(
			&session.ID,
			&session.MovieID,
			&session.TheaterID,
			&session.Datetime,
			&session.FullPrice,
			&session.HalfPrice,
			&session.CreatedAt,
			&session.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan session row", zap.Error(err))
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

func (r *sessionRepository) Count(ctx context.Context, filter SessionFilter) (int64, error) {
	clause, args := filterClause(filter, nil)
	query := `SELECT COUNT(*) FROM sessions WHERE 1=1` + clause

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count sessions", zap.Error(err))
		return 0, fmt.Errorf("count sessions: %w", err)
	}

	return count, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *entity.Session) error {
	query := `
		UPDATE sessions
		SET movie_id = $2, theater_id = $3, datetime = $4, full_price = $5, half_price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		session.ID,
		session.MovieID,
		session.TheaterID,
		session.Datetime,
		session.FullPrice,
		session.HalfPrice,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return fmt.Errorf("update session %s: %w", session.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update session %s: %w", session.ID.String(), entity.ErrSessionNotFound)
	}

	return nil
}

// Delete removes the session row. Seats are removed by the caller in the same
// transaction before this runs.
func (r *sessionRepository) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("delete session %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete session %s: %w", id.String(), entity.ErrSessionNotFound)
	}

	r.log.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}
