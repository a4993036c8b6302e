package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sessionFixture struct {
	service  SessionService
	db       *fakeDB
	seats    *fakeSeatRepo
	sessions *fakeSessionRepo
	bookings *fakeReservationRepo
	movie    *entity.Movie
	theater  *entity.Theater
}

func newSessionFixture(t *testing.T, capacity int) *sessionFixture {
	t.Helper()

	db := &fakeDB{}
	seats := newFakeSeatRepo()
	sessions := newFakeSessionRepo()
	bookings := newFakeReservationRepo()
	movies := newFakeMovieRepo()
	theaters := newFakeTheaterRepo()

	now := time.Now()
	movie := &entity.Movie{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title: "Metropolis",
	}
	movies.movies[movie.ID] = movie

	theater := &entity.Theater{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:     "Room 1",
		Capacity: capacity,
		Type:     "standard",
	}
	theaters.theaters[theater.ID] = theater

	repo := &repository.Repository{
		User:        newFakeUserRepo(),
		Movie:       movies,
		Theater:     theaters,
		Session:     sessions,
		Seat:        seats,
		Reservation: bookings,
	}

	return &sessionFixture{
		service:  NewSessionService(db, repo, nil, zap.NewNop()),
		db:       db,
		seats:    seats,
		sessions: sessions,
		bookings: bookings,
		movie:    movie,
		theater:  theater,
	}
}

func (f *sessionFixture) createReq() *request.CreateSessionRequest {
	return &request.CreateSessionRequest{
		MovieID:   f.movie.ID.String(),
		TheaterID: f.theater.ID.String(),
		Datetime:  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		FullPrice: 20,
		HalfPrice: 10,
	}
}

func TestCreateSessionSeatMapFromCapacity(t *testing.T) {
	f := newSessionFixture(t, 25)

	resp, err := f.service.CreateSession(context.Background(), f.createReq())
	require.NoError(t, err)

	// 25 seats cut into rows of ten: A1-A10, B1-B10, C1-C5
	require.Len(t, resp.Seats, 25)
	assert.Equal(t, "A", resp.Seats[0].Row)
	assert.Equal(t, 1, resp.Seats[0].Number)
	assert.Equal(t, "B", resp.Seats[10].Row)
	assert.Equal(t, "C", resp.Seats[24].Row)
	assert.Equal(t, 5, resp.Seats[24].Number)

	for _, seat := range resp.Seats {
		assert.Equal(t, string(entity.SeatAvailable), seat.Status)
	}

	assert.Equal(t, f.movie.Title, resp.MovieTitle)
	assert.Equal(t, f.theater.Name, resp.TheaterName)
	require.NotNil(t, f.db.lastTx())
	assert.True(t, f.db.lastTx().committed)
}

func TestCreateSessionExplicitLayout(t *testing.T) {
	f := newSessionFixture(t, 100)

	req := f.createReq()
	req.Rows = 2
	req.SeatsPerRow = 4

	resp, err := f.service.CreateSession(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Seats, 8)
	assert.Equal(t, "B", resp.Seats[7].Row)
	assert.Equal(t, 4, resp.Seats[7].Number)
}

func TestCreateSessionUnknownMovie(t *testing.T) {
	f := newSessionFixture(t, 10)

	req := f.createReq()
	req.MovieID = uuid.New().String()

	_, err := f.service.CreateSession(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrMovieNotFound)
	assert.Empty(t, f.sessions.sessions)
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "A", rowLabel(0))
	assert.Equal(t, "Z", rowLabel(25))
	assert.Equal(t, "AA", rowLabel(26))
	assert.Equal(t, "AZ", rowLabel(51))
	assert.Equal(t, "BA", rowLabel(52))
}

func TestDeleteSessionWithActiveReservations(t *testing.T) {
	f := newSessionFixture(t, 10)

	resp, err := f.service.CreateSession(context.Background(), f.createReq())
	require.NoError(t, err)

	sessionID := uuid.MustParse(resp.ID)
	f.bookings.reservations[uuid.New()] = &entity.Reservation{
		Base:      entity.Base{ID: uuid.New()},
		UserID:    uuid.New(),
		SessionID: sessionID,
		Status:    entity.ReservationStatusConfirmed,
	}

	err = f.service.DeleteSession(context.Background(), resp.ID)
	assert.ErrorIs(t, err, entity.ErrSessionHasBookings)
	assert.NotEmpty(t, f.sessions.sessions)
}

func TestDeleteSessionCancelledOnly(t *testing.T) {
	f := newSessionFixture(t, 10)

	resp, err := f.service.CreateSession(context.Background(), f.createReq())
	require.NoError(t, err)

	sessionID := uuid.MustParse(resp.ID)
	f.bookings.reservations[uuid.New()] = &entity.Reservation{
		Base:      entity.Base{ID: uuid.New()},
		UserID:    uuid.New(),
		SessionID: sessionID,
		Status:    entity.ReservationStatusCancelled,
	}

	// Cancelled reservations do not block deletion
	err = f.service.DeleteSession(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Empty(t, f.sessions.sessions)
}

func TestGetSeatMapUnknownSession(t *testing.T) {
	f := newSessionFixture(t, 10)

	_, err := f.service.GetSeatMap(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}
