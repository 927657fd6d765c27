package listTickets

import (
	"context"
	"errors"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/lib/api/response"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/models"
	"visitBooker/internal/service/booking"
)

type TicketsResponse struct {
	response.Response
	Tickets []models.Ticket `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketLister
type TicketLister interface {
	ListForUser(ctx context.Context, identity *models.Identity) ([]models.Ticket, error)
}

// New lists the caller's tickets. Anonymous callers get an empty list.
func New(log *slog.Logger, lister TicketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listTickets.New"

		log := log.With(slog.String("op", op))

		identity := mwauth.FromContext(r.Context())
		if identity != nil {
			log = log.With(slog.String("user_id", identity.ID))
		}

		tickets, err := lister.ListForUser(r.Context(), identity)
		if err != nil {
			log.Error("failed to list tickets", sl.Err(err))

			if errors.Is(err, booking.ErrTransient) {
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("booking service temporarily unavailable"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list tickets"))
			return
		}

		log.Info("tickets listed", slog.Int("count", len(tickets)))

		responseOK(w, r, tickets)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, tickets []models.Ticket) {
	if tickets == nil {
		tickets = []models.Ticket{}
	}

	render.JSON(w, r, TicketsResponse{
		Response: response.OK(),
		Tickets:  tickets,
	})
}
