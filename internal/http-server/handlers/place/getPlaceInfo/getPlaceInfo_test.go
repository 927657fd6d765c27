package getPlaceInfo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"visitBooker/internal/http-server/handlers/place/getPlaceInfo/mocks"
	"visitBooker/internal/lib/logger/handlers/slogdiscard"
	"visitBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlaceInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	karnak := models.Place{
		Key:         "Luxor/Karnak-Temple",
		Name:        "Karnak Temple",
		City:        "Luxor",
		Description: "Temple complex",
		Location:    "East bank",
	}

	testCases := []struct {
		name           string
		path           string
		mockSetup      func(m *mocks.PlaceGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			path: "/places/Luxor/Karnak-Temple",
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("Place", "Luxor/Karnak-Temple").Return(karnak, true)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp PlaceInfoResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.NotNil(t, resp.Place)
				assert.Equal(t, karnak, *resp.Place)
			},
		},
		{
			name: "Escaped place name",
			path: "/places/Luxor/Karnak%20Temple",
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("Place", "Luxor/Karnak-Temple").Return(karnak, true)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Unknown place",
			path: "/places/Luxor/Atlantis",
			mockSetup: func(m *mocks.PlaceGetter) {
				m.On("Place", "Luxor/Atlantis").Return(models.Place{}, false)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"place not found"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewPlaceGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/places/{city}/{place}", New(logger, mockGetter))

			req, err := http.NewRequest(http.MethodGet, tc.path, nil)
			require.NoError(t, err)

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

func TestHandlerWithoutChiContext(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockGetter := mocks.NewPlaceGetter(t)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()

	New(logger, mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "city and place are required")
}

func TestHandlerWithChiContext(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	mockGetter := mocks.NewPlaceGetter(t)

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("city", "Cairo")
	rctx.URLParams.Add("place", "Giza Pyramids")

	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	mockGetter.On("Place", "Cairo/Giza-Pyramids").Return(models.Place{Key: "Cairo/Giza-Pyramids"}, true)

	rr := httptest.NewRecorder()

	New(logger, mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
