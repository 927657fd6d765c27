package getAllPlaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"visitBooker/internal/http-server/handlers/place/getAllPlaces/mocks"
	"visitBooker/internal/lib/logger/handlers/slogdiscard"
	"visitBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllPlacesHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	cities := []models.City{
		{
			Name:        "Luxor",
			Description: "City of temples",
			Places: []models.Place{
				{Key: "Luxor/Karnak-Temple", Name: "Karnak Temple", City: "Luxor"},
				{Key: "Luxor/Valley-of-the-Kings", Name: "Valley of the Kings", City: "Luxor"},
			},
		},
		{
			Name:   "Cairo",
			Places: []models.Place{{Key: "Cairo/Giza-Pyramids", Name: "Giza Pyramids", City: "Cairo"}},
		},
	}

	testCases := []struct {
		name         string
		mockSetup    func(m *mocks.CitiesGetter)
		expectedBody string
		checkBody    func(t *testing.T, body string)
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.CitiesGetter) {
				m.On("Cities").Return(cities)
			},
			checkBody: func(t *testing.T, body string) {
				var resp PlacesResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				assert.Equal(t, "OK", resp.Status)
				require.Len(t, resp.Cities, 2)
				assert.Equal(t, "Luxor", resp.Cities[0].Name)
				assert.Len(t, resp.Cities[0].Places, 2)
				assert.Equal(t, "Cairo/Giza-Pyramids", resp.Cities[1].Places[0].Key)
			},
		},
		{
			name: "Empty catalog",
			mockSetup: func(m *mocks.CitiesGetter) {
				m.On("Cities").Return(nil)
			},
			expectedBody: `{"status":"OK","cities":[]}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewCitiesGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/places", New(logger, mockGetter))

			req, err := http.NewRequest(http.MethodGet, "/places", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
