package usecase

import (
	"context"
	"testing"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()

	users := newFakeUserRepo()
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}

	return NewAuthService(users, config, zap.NewNop()), users
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newAuthService(t)

	registered, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", registered.User.Email)
	assert.Equal(t, "user", registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	// The issued token carries the right identity
	identity, err := utils.ParseAccessToken("test-secret", registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.UserID.String())
	assert.Equal(t, "user", identity.Role)

	logged, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthService(t)

	req := &request.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail identically
	_, err = service.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = service.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestPasswordNeverStoredPlain(t *testing.T) {
	service, users := newAuthService(t)

	registered, err := service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := users.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.VerifyPassword(user.PasswordHash, "secret123"))
	assert.Equal(t, registered.User.ID, user.ID.String())
}
