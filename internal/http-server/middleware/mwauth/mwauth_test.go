package mwauth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visitBooker/internal/lib/logger/handlers/slogdiscard"
	"visitBooker/internal/models"
)

const testSecret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func validClaims() Claims {
	return Claims{
		Email: "alice@example.com",
		Name:  "Alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	noSubject := validClaims()
	noSubject.Subject = ""

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
		expectedUser   *models.Identity
	}{
		{
			name:           "Anonymous",
			header:         "",
			expectedStatus: http.StatusOK,
			expectedUser:   nil,
		},
		{
			name:           "Valid token",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, validClaims()),
			expectedStatus: http.StatusOK,
			expectedUser:   &models.Identity{ID: "alice", Email: "alice@example.com", DisplayName: "Alice"},
		},
		{
			name:           "Wrong secret",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, "other", validClaims()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong algorithm",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS512, testSecret, validClaims()),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, expired),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No subject",
			header:         "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, noSubject),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Not a bearer header",
			header:         "Basic YWxpY2U6c2VjcmV0",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var (
				called bool
				got    *models.Identity
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				got = FromContext(r.Context())
			})

			handler := New(slogdiscard.NewDiscardLogger(), testSecret)(next)

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus != http.StatusOK {
				assert.False(t, called)
				assert.Contains(t, rr.Body.String(), `"status":"Error"`)
				return
			}

			assert.True(t, called)
			assert.Equal(t, tc.expectedUser, got)
		})
	}
}

func TestFromContextEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, FromContext(req.Context()))
}
