package usecase

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeTx satisfies database.Tx. The fake repositories keep their own state,
// so the query surface is inert; only commit/rollback bookkeeping matters.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	begun []*fakeTx
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	tx := &fakeTx{}
	d.begun = append(d.begun, tx)
	return tx, nil
}

func (d *fakeDB) Ping(ctx context.Context) error { return nil }

func (d *fakeDB) Close() {}

func (d *fakeDB) lastTx() *fakeTx {
	if len(d.begun) == 0 {
		return nil
	}
	return d.begun[len(d.begun)-1]
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (r *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	return r.movies[id], nil
}

func (r *fakeMovieRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, movie := range r.movies {
		movies = append(movies, movie)
	}
	return movies, nil
}

func (r *fakeMovieRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.movies)), nil
}

func (r *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	r.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.movies, id)
	return nil
}

type fakeTheaterRepo struct {
	theaters map[uuid.UUID]*entity.Theater
}

func newFakeTheaterRepo() *fakeTheaterRepo {
	return &fakeTheaterRepo{theaters: make(map[uuid.UUID]*entity.Theater)}
}

func (r *fakeTheaterRepo) Create(ctx context.Context, theater *entity.Theater) error {
	r.theaters[theater.ID] = theater
	return nil
}

func (r *fakeTheaterRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theater, error) {
	return r.theaters[id], nil
}

func (r *fakeTheaterRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Theater, error) {
	var theaters []*entity.Theater
	for _, theater := range r.theaters {
		theaters = append(theaters, theater)
	}
	return theaters, nil
}

func (r *fakeTheaterRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.theaters)), nil
}

func (r *fakeTheaterRepo) Update(ctx context.Context, theater *entity.Theater) error {
	r.theaters[theater.ID] = theater
	return nil
}

func (r *fakeTheaterRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.theaters, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
	deleted  []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, q database.Querier, session *entity.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	return r.sessions[id], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, filter repository.SessionFilter, limit, offset int) ([]*entity.Session, error) {
	var sessions []*entity.Session
	for _, session := range r.sessions {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, filter repository.SessionFilter) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	delete(r.sessions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeSeatRepo keys seat state by "row#number" and mirrors the conditional
// update semantics: Occupy only counts seats that were available.
type fakeSeatRepo struct {
	seats        map[string]entity.SeatStatus
	created      []*entity.Seat
	releaseCalls [][]entity.SeatRef
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: make(map[string]entity.SeatStatus)}
}

func seatKey(ref entity.SeatRef) string {
	return fmt.Sprintf("%s#%d", ref.Row, ref.Number)
}

func (r *fakeSeatRepo) addSeat(ref entity.SeatRef, status entity.SeatStatus) {
	r.seats[seatKey(ref)] = status
}

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, q database.Querier, seats []*entity.Seat) error {
	for _, seat := range seats {
		r.created = append(r.created, seat)
		r.addSeat(entity.SeatRef{Row: seat.SeatRow, Number: seat.SeatNumber}, seat.Status)
	}
	return nil
}

func (r *fakeSeatRepo) FindBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error) {
	return r.created, nil
}

func (r *fakeSeatRepo) DeleteBySessionID(ctx context.Context, q database.Querier, sessionID uuid.UUID) error {
	r.created = nil
	r.seats = make(map[string]entity.SeatStatus)
	return nil
}

func (r *fakeSeatRepo) Occupy(ctx context.Context, q database.Querier, sessionID uuid.UUID, refs []entity.SeatRef) (int64, error) {
	var flipped int64
	for _, ref := range refs {
		if r.seats[seatKey(ref)] == entity.SeatAvailable {
			r.seats[seatKey(ref)] = entity.SeatOccupied
			flipped++
		}
	}
	return flipped, nil
}

func (r *fakeSeatRepo) Release(ctx context.Context, q database.Querier, sessionID uuid.UUID, refs []entity.SeatRef) (int64, error) {
	r.releaseCalls = append(r.releaseCalls, refs)
	var flipped int64
	for _, ref := range refs {
		if r.seats[seatKey(ref)] == entity.SeatOccupied {
			r.seats[seatKey(ref)] = entity.SeatAvailable
			flipped++
		}
	}
	return flipped, nil
}

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*entity.Reservation
	seats        map[uuid.UUID][]*entity.ReservationSeat
	createCalls  int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[uuid.UUID]*entity.Reservation),
		seats:        make(map[uuid.UUID][]*entity.ReservationSeat),
	}
}

func (r *fakeReservationRepo) Create(ctx context.Context, q database.Querier, reservation *entity.Reservation, seats []*entity.ReservationSeat) error {
	r.createCalls++
	r.reservations[reservation.ID] = reservation
	r.seats[reservation.ID] = seats
	return nil
}

func (r *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return r.reservations[id], nil
}

func (r *fakeReservationRepo) FindSeats(ctx context.Context, reservationID uuid.UUID) ([]*entity.ReservationSeat, error) {
	return r.seats[reservationID], nil
}

func (r *fakeReservationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for _, reservation := range r.reservations {
		if reservation.UserID == userID {
			reservations = append(reservations, reservation)
		}
	}
	return reservations, nil
}

func (r *fakeReservationRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	reservations, _ := r.FindByUserID(ctx, userID, 0, 0)
	return int64(len(reservations)), nil
}

func (r *fakeReservationRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for _, reservation := range r.reservations {
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func (r *fakeReservationRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.reservations)), nil
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error {
	if reservation, ok := r.reservations[id]; ok {
		reservation.Status = status
	}
	return nil
}

func (r *fakeReservationRepo) Delete(ctx context.Context, q database.Querier, id uuid.UUID) error {
	delete(r.reservations, id)
	delete(r.seats, id)
	return nil
}

func (r *fakeReservationRepo) ExistsActiveBySessionID(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	for _, reservation := range r.reservations {
		if reservation.SessionID == sessionID && reservation.Status != entity.ReservationStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}
