package getPlaceInfo

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"net/url"
	"visitBooker/internal/catalog"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/models"
)

type PlaceInfoResponse struct {
	response.Response
	Place *models.Place `json:"place,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PlaceGetter
type PlaceGetter interface {
	Place(key string) (models.Place, bool)
}

func New(log *slog.Logger, places PlaceGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.place.getPlaceInfo.New"

		log := log.With(slog.String("op", op))

		city, cityErr := url.PathUnescape(chi.URLParam(r, "city"))
		name, nameErr := url.PathUnescape(chi.URLParam(r, "place"))
		if cityErr != nil || nameErr != nil || city == "" || name == "" {
			log.Error("city and place are required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("city and place are required"))
			return
		}

		key := catalog.Key(city, name)

		log = log.With(slog.String("place_key", key))

		place, ok := places.Place(key)
		if !ok {
			log.Info("place not found")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("place not found"))
			return
		}

		responseOK(w, r, place)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, place models.Place) {
	render.JSON(w, r, PlaceInfoResponse{
		Response: response.OK(),
		Place:    &place,
	})
}
