package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func protected(t *testing.T, mws ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentity(r.Context())
		require.True(t, ok)
		w.Write([]byte(identity.Role))
	})

	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	return handler
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAuthenticateMissingToken(t *testing.T) {
	handler := protected(t, Authenticate(testSecret, zap.NewNop()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	handler := protected(t, Authenticate(testSecret, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Token abc")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateForgedToken(t *testing.T) {
	handler := protected(t, Authenticate(testSecret, zap.NewNop()))

	token, err := utils.NewAccessToken("wrong-secret", uuid.New(), "user", 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token.Token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	handler := protected(t, Authenticate(testSecret, zap.NewNop()))

	token, err := utils.NewAccessToken(testSecret, uuid.New(), "user", 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token.Token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", rec.Body.String())
}

func TestRequireRoleForbidden(t *testing.T) {
	handler := protected(t,
		Authenticate(testSecret, zap.NewNop()),
		RequireRole(zap.NewNop(), "admin"),
	)

	token, err := utils.NewAccessToken(testSecret, uuid.New(), "user", 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token.Token))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowed(t *testing.T) {
	handler := protected(t,
		Authenticate(testSecret, zap.NewNop()),
		RequireRole(zap.NewNop(), "admin"),
	)

	token, err := utils.NewAccessToken(testSecret, uuid.New(), "admin", 1)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, bearerRequest(token.Token))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}
