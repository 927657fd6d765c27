package reserveBooking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"visitBooker/internal/http-server/handlers/booking/reserveBooking/mocks"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/lib/logger/handlers/slogdiscard"
	"visitBooker/internal/models"
	"visitBooker/internal/service/booking"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReserveBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	alice := &models.Identity{ID: "alice", Email: "alice@example.com", DisplayName: "Alice"}
	input := booking.ReserveInput{
		PlaceKey:        "Luxor/Karnak-Temple",
		VisitDate:       "2030-03-10",
		VisitorCategory: "adult",
	}
	created := &models.Booking{
		ID:               "b1",
		UserID:           "alice",
		PlaceKey:         "Luxor/Karnak-Temple",
		PlaceDisplayName: "Karnak Temple",
		CityDisplayName:  "Luxor",
		VisitDate:        time.Date(2030, 3, 10, 0, 0, 0, 0, time.UTC),
		VisitorCategory:  "adult",
	}
	validBody := `{"place_key":"Luxor/Karnak-Temple","visit_date":"2030-03-10","visitor_category":"adult"}`

	testCases := []struct {
		name           string
		identity       *models.Identity
		requestBody    string
		mockSetup      func(m *mocks.BookingReserver)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			identity:    alice,
			requestBody: validBody,
			mockSetup: func(m *mocks.BookingReserver) {
				m.On("Reserve", mock.Anything, alice, input).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				var resp BookingResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.NotNil(t, resp.Booking)
				assert.Equal(t, "b1", resp.Booking.ID)
				assert.Equal(t, "Karnak Temple", resp.Booking.PlaceDisplayName)
			},
		},
		{
			name:        "Display names are passed through",
			identity:    alice,
			requestBody: `{"place_key":"Luxor/Karnak-Temple","place_name":"Karnak","city_name":"Thebes","visit_date":"2030-03-10","visitor_category":"adult"}`,
			mockSetup: func(m *mocks.BookingReserver) {
				withNames := input
				withNames.PlaceDisplayName = "Karnak"
				withNames.CityDisplayName = "Thebes"
				m.On("Reserve", mock.Anything, alice, withNames).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Anonymous",
			identity:       nil,
			requestBody:    validBody,
			mockSetup:      func(m *mocks.BookingReserver) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"log in required"}`,
		},
		{
			name:           "Invalid JSON",
			identity:       alice,
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.BookingReserver) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Missing place_key",
			identity:       alice,
			requestBody:    `{"visit_date":"2030-03-10","visitor_category":"adult"}`,
			mockSetup:      func(m *mocks.BookingReserver) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field PlaceKey is a required field"}`,
		},
		{
			name:           "Missing everything",
			identity:       alice,
			requestBody:    `{}`,
			mockSetup:      func(m *mocks.BookingReserver) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "PlaceKey")
				assert.Contains(t, body, "VisitDate")
				assert.Contains(t, body, "VisitorCategory")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockReserver := mocks.NewBookingReserver(t)
			tc.mockSetup(mockReserver)

			handler := New(logger, mockReserver)

			req, err := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			if tc.identity != nil {
				req = req.WithContext(mwauth.WithIdentity(req.Context(), tc.identity))
			}

			router := chi.NewRouter()
			router.Post("/bookings", handler)

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestReserveBookingServiceErrors(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	alice := &models.Identity{ID: "alice"}

	testCases := []struct {
		err            error
		expectedStatus int
		expectedError  string
	}{
		{booking.ErrUnauthenticated, http.StatusUnauthorized, "log in required"},
		{booking.ErrInvalidDate, http.StatusBadRequest, "invalid visit date"},
		{booking.ErrInvalidCategory, http.StatusBadRequest, "invalid visitor category"},
		{booking.ErrUnknownPlace, http.StatusBadRequest, "unknown place"},
		{booking.ErrDuplicateBooking, http.StatusConflict, "booking already exists for this place and date"},
		{booking.ErrTransient, http.StatusServiceUnavailable, "booking service temporarily unavailable, check your tickets before retrying"},
		{errors.New("boom"), http.StatusInternalServerError, "failed to reserve booking"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.err.Error(), func(t *testing.T) {
			t.Parallel()

			mockReserver := mocks.NewBookingReserver(t)
			mockReserver.On("Reserve", mock.Anything, alice, mock.AnythingOfType("booking.ReserveInput")).
				Return(nil, fmt.Errorf("service.booking.Reserve: %w", tc.err))

			req := httptest.NewRequest(http.MethodPost, "/bookings",
				bytes.NewBufferString(`{"place_key":"x","visit_date":"2030-03-10","visitor_category":"adult"}`))
			req = req.WithContext(mwauth.WithIdentity(req.Context(), alice))

			rr := httptest.NewRecorder()
			New(logger, mockReserver).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			var resp BookingResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "Error", resp.Status)
			assert.Equal(t, tc.expectedError, resp.Error)
			assert.Nil(t, resp.Booking)
		})
	}
}

func TestResponseCreated(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()

	responseCreated(rr, req, &models.Booking{ID: "b1"})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var actual BookingResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &actual))

	assert.Equal(t, "OK", actual.Status)
	assert.Empty(t, actual.Error)
	assert.Equal(t, "b1", actual.Booking.ID)
}
