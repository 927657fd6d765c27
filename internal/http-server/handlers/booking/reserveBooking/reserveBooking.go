package reserveBooking

import (
	"context"
	"errors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/models"
	"visitBooker/internal/service/booking"
)

type BookingRequest struct {
	PlaceKey        string `json:"place_key" validate:"required"`
	PlaceName       string `json:"place_name,omitempty"`
	CityName        string `json:"city_name,omitempty"`
	VisitDate       string `json:"visit_date" validate:"required"`
	VisitorCategory string `json:"visitor_category" validate:"required"`
}

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingReserver
type BookingReserver interface {
	Reserve(ctx context.Context, identity *models.Identity, in booking.ReserveInput) (*models.Booking, error)
}

func New(log *slog.Logger, reserver BookingReserver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.reserveBooking.New"

		log := log.With(slog.String("op", op))

		identity := mwauth.FromContext(r.Context())
		if identity == nil {
			log.Info("anonymous reserve attempt")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error(booking.ErrUnauthenticated.Error()))
			return
		}

		log = log.With(slog.String("user_id", identity.ID))

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		b, err := reserver.Reserve(r.Context(), identity, booking.ReserveInput{
			PlaceKey:         req.PlaceKey,
			PlaceDisplayName: req.PlaceName,
			CityDisplayName:  req.CityName,
			VisitDate:        req.VisitDate,
			VisitorCategory:  req.VisitorCategory,
		})
		if err != nil {
			log.Error("failed to reserve booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrUnauthenticated):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(booking.ErrUnauthenticated.Error()))
			case errors.Is(err, booking.ErrInvalidDate):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrInvalidDate.Error()))
			case errors.Is(err, booking.ErrInvalidCategory):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrInvalidCategory.Error()))
			case errors.Is(err, booking.ErrUnknownPlace):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrUnknownPlace.Error()))
			case errors.Is(err, booking.ErrDuplicateBooking):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(booking.ErrDuplicateBooking.Error()))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("booking service temporarily unavailable, check your tickets before retrying"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to reserve booking"))
			}
			return
		}

		log.Info("booking reserved", slog.String("booking_id", b.ID))

		responseCreated(w, r, b)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, b *models.Booking) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  b,
	})
}
