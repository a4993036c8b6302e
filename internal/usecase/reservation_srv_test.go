package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	service      ReservationService
	db           *fakeDB
	seats        *fakeSeatRepo
	reservations *fakeReservationRepo
	sessions     *fakeSessionRepo
	session      *entity.Session
	user         utils.Identity
	admin        utils.Identity
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	db := &fakeDB{}
	seats := newFakeSeatRepo()
	reservations := newFakeReservationRepo()
	sessions := newFakeSessionRepo()

	repo := &repository.Repository{
		User:        newFakeUserRepo(),
		Movie:       newFakeMovieRepo(),
		Theater:     newFakeTheaterRepo(),
		Session:     sessions,
		Seat:        seats,
		Reservation: reservations,
	}

	session := &entity.Session{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		MovieID:   uuid.New(),
		TheaterID: uuid.New(),
		Datetime:  time.Now().Add(24 * time.Hour),
		FullPrice: 20,
		HalfPrice: 10,
	}
	sessions.sessions[session.ID] = session

	for _, ref := range []entity.SeatRef{{Row: "A", Number: 1}, {Row: "A", Number: 2}, {Row: "B", Number: 1}} {
		seats.addSeat(ref, entity.SeatAvailable)
	}

	service := NewReservationService(db, repo, nil, nil, zap.NewNop())

	return &bookingFixture{
		service:      service,
		db:           db,
		seats:        seats,
		reservations: reservations,
		sessions:     sessions,
		session:      session,
		user:         utils.Identity{UserID: uuid.New(), Role: "user"},
		admin:        utils.Identity{UserID: uuid.New(), Role: "admin"},
	}
}

func (f *bookingFixture) createReq(seats ...request.ReservationSeatRequest) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		SessionID:     f.session.ID.String(),
		Seats:         seats,
		PaymentMethod: "credit_card",
	}
}

func TestCreateReservation(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
		request.ReservationSeatRequest{Row: "A", Number: 2, FareType: "half"},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, 30.0, resp.TotalPrice)
	assert.Len(t, resp.Seats, 2)
	assert.Equal(t, f.user.UserID.String(), resp.UserID)

	assert.Equal(t, entity.SeatOccupied, f.seats.seats["A#1"])
	assert.Equal(t, entity.SeatOccupied, f.seats.seats["A#2"])
	assert.Equal(t, entity.SeatAvailable, f.seats.seats["B#1"])

	require.NotNil(t, f.db.lastTx())
	assert.True(t, f.db.lastTx().committed)
}

func TestCreateReservationSeatConflict(t *testing.T) {
	f := newBookingFixture(t)
	f.seats.seats["A#2"] = entity.SeatOccupied

	_, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
		request.ReservationSeatRequest{Row: "A", Number: 2, FareType: "full"},
	))
	require.ErrorIs(t, err, entity.ErrSeatUnavailable)

	// Nothing persisted, transaction rolled back
	assert.Zero(t, f.reservations.createCalls)
	require.NotNil(t, f.db.lastTx())
	assert.True(t, f.db.lastTx().rolledBack)
}

func TestCreateReservationSessionNotFound(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createReq(request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"})
	req.SessionID = uuid.New().String()

	_, err := f.service.CreateReservation(context.Background(), f.user, req)
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.Empty(t, f.db.begun)
}

func TestCreateReservationInvalidSessionID(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createReq(request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"})
	req.SessionID = "not-a-uuid"

	_, err := f.service.CreateReservation(context.Background(), f.user, req)
	require.ErrorIs(t, err, entity.ErrInvalidID)
}

func TestGetReservationOwnership(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	// Owner and admin can read it
	_, err = f.service.GetReservationByID(context.Background(), f.user, resp.ID)
	assert.NoError(t, err)
	_, err = f.service.GetReservationByID(context.Background(), f.admin, resp.ID)
	assert.NoError(t, err)

	// Another user cannot
	other := utils.Identity{UserID: uuid.New(), Role: "user"}
	_, err = f.service.GetReservationByID(context.Background(), other, resp.ID)
	assert.ErrorIs(t, err, entity.ErrNotOwner)
}

func TestUpdateReservationStatusCancelReleasesSeats(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
		request.ReservationSeatRequest{Row: "A", Number: 2, FareType: "half"},
	))
	require.NoError(t, err)

	updated, err := f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusCancelled, updated.Status)
	assert.Equal(t, entity.SeatAvailable, f.seats.seats["A#1"])
	assert.Equal(t, entity.SeatAvailable, f.seats.seats["A#2"])
	assert.Len(t, f.seats.releaseCalls, 1)
}

func TestUpdateReservationStatusIdempotent(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	txCount := len(f.db.begun)

	// Setting the status it already has changes nothing
	updated, err := f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "confirmed"})
	require.NoError(t, err)

	assert.Equal(t, entity.ReservationStatusConfirmed, updated.Status)
	assert.Len(t, f.db.begun, txCount)
	assert.Empty(t, f.seats.releaseCalls)
}

func TestUpdateReservationStatusDoubleCancel(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	// Second cancel is a no-op, not an error and not a second release
	_, err = f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Len(t, f.seats.releaseCalls, 1)
}

func TestUpdateReservationStatusInvalid(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.UpdateReservationStatus(context.Background(), uuid.New().String(),
		&request.UpdateReservationStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}

func TestUpdateReservationStatusUncancelReoccupies(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	// Someone else grabbed the seat in the meantime
	f.seats.seats["A#1"] = entity.SeatOccupied

	_, err = f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, entity.ErrSeatUnavailable)
}

func TestDeleteReservationReleasesSeats(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	err = f.service.DeleteReservation(context.Background(), f.user, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.SeatAvailable, f.seats.seats["A#1"])
	assert.Empty(t, f.reservations.reservations)
}

func TestDeleteReservationNotOwner(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	other := utils.Identity{UserID: uuid.New(), Role: "user"}
	err = f.service.DeleteReservation(context.Background(), other, resp.ID)
	assert.ErrorIs(t, err, entity.ErrNotOwner)

	// Seat still held
	assert.Equal(t, entity.SeatOccupied, f.seats.seats["A#1"])
}

func TestDeleteCancelledReservationSkipsRelease(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	_, err = f.service.UpdateReservationStatus(context.Background(), resp.ID,
		&request.UpdateReservationStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	err = f.service.DeleteReservation(context.Background(), f.admin, resp.ID)
	require.NoError(t, err)

	assert.Len(t, f.seats.releaseCalls, 1)
	assert.Empty(t, f.reservations.reservations)
}

func TestGetUserReservations(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.CreateReservation(context.Background(), f.user, f.createReq(
		request.ReservationSeatRequest{Row: "A", Number: 1, FareType: "full"},
	))
	require.NoError(t, err)

	page, err := f.service.GetUserReservations(context.Background(), f.user,
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	other := utils.Identity{UserID: uuid.New(), Role: "user"}
	page, err = f.service.GetUserReservations(context.Background(), other,
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}
