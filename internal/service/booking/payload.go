package booking

import (
	"encoding/json"
	"errors"
	"fmt"

	"visitBooker/internal/models"
)

type codePayload struct {
	ID              string `json:"id"`
	PlaceKey        string `json:"place_key"`
	Place           string `json:"place"`
	City            string `json:"city"`
	VisitDate       string `json:"visit_date"`
	VisitorCategory string `json:"visitor_category"`
	Holder          string `json:"holder,omitempty"`
}

// Payload serializes the display fields of a booking for its scannable code.
// The same booking always yields the same string.
func Payload(b models.Booking) (string, error) {
	if b.ID == "" {
		return "", errors.New("booking has no id")
	}

	raw, err := json.Marshal(codePayload{
		ID:              b.ID,
		PlaceKey:        b.PlaceKey,
		Place:           b.PlaceDisplayName,
		City:            b.CityDisplayName,
		VisitDate:       b.VisitDate.Format(models.DateLayout),
		VisitorCategory: b.VisitorCategory,
		Holder:          b.UserDisplayName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	return string(raw), nil
}
