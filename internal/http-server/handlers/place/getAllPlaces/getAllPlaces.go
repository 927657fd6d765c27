package getAllPlaces

import (
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/models"
)

type PlacesResponse struct {
	response.Response
	Cities []models.City `json:"cities"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CitiesGetter
type CitiesGetter interface {
	Cities() []models.City
}

func New(log *slog.Logger, citiesGetter CitiesGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.getAllPlaces.New"

		log := log.With(slog.String("op", op))

		cities := citiesGetter.Cities()

		log.Debug("places retrieved", slog.Int("cities", len(cities)))

		responseOK(w, r, cities)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, cities []models.City) {
	if cities == nil {
		cities = []models.City{}
	}

	render.JSON(w, r, PlacesResponse{
		Response: response.OK(),
		Cities:   cities,
	})
}
