package cancelBooking

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/models"
	"visitBooker/internal/service/booking"
)

type CancelResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	Cancel(ctx context.Context, identity *models.Identity, bookingID string) error
}

func New(log *slog.Logger, canceller BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		log := log.With(slog.String("op", op))

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		identity := mwauth.FromContext(r.Context())
		if identity != nil {
			log = log.With(slog.String("user_id", identity.ID))
		}

		err := canceller.Cancel(r.Context(), identity, bookingID)
		if err != nil {
			log.Error("failed to cancel booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrUnauthenticated):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(booking.ErrUnauthenticated.Error()))
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error(booking.ErrNotFound.Error()))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error(booking.ErrForbidden.Error()))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("booking service temporarily unavailable"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel booking"))
			}
			return
		}

		log.Info("booking cancelled successfully")

		responseOK(w, r)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, CancelResponse{
		Response: response.OK(),
	})
}
