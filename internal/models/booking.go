package models

import "time"

// DateLayout is the calendar-day format used for visit dates on the wire.
const DateLayout = "2006-01-02"

type Booking struct {
	ID               string    `json:"id" db:"id"`
	UserID           string    `json:"user_id" db:"user_id"`
	UserDisplayName  string    `json:"user_display_name" db:"user_display_name"`
	PlaceKey         string    `json:"place_key" db:"place_key"`
	PlaceDisplayName string    `json:"place_display_name" db:"place_display_name"`
	CityDisplayName  string    `json:"city_display_name" db:"city_display_name"`
	VisitDate        time.Time `json:"visit_date" db:"visit_date"`
	VisitorCategory  string    `json:"visitor_category" db:"visitor_category"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// Ticket is a booking prepared for display, with its scannable code.
type Ticket struct {
	Booking   Booking `json:"booking"`
	Payload   string  `json:"payload,omitempty"`
	QRCode    []byte  `json:"qr_code,omitempty"`
	CodeError string  `json:"code_error,omitempty"`
}

// DuplicateGroup lists bookings that share one (user, place, visit day) tuple.
type DuplicateGroup struct {
	UserID     string    `json:"user_id" db:"user_id"`
	PlaceKey   string    `json:"place_key" db:"place_key"`
	VisitDate  time.Time `json:"visit_date" db:"visit_date"`
	BookingIDs []string  `json:"booking_ids"`
}
