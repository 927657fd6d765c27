// Package booking reserves, lists and cancels visit bookings. It keeps at most
// one booking per (user, place, visit day) and never caches the store.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"visitBooker/internal/events"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/models"
	"visitBooker/internal/storage"
)

const defaultStoreTimeout = 3 * time.Second

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Store
type Store interface {
	FindByUserPlaceDay(ctx context.Context, userID, placeKey string, dayStart, dayEnd time.Time) ([]models.Booking, error)
	Insert(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
	FindDuplicates(ctx context.Context) ([]models.DuplicateGroup, error)
}

type PlaceResolver interface {
	Place(key string) (models.Place, bool)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CodeRenderer
type CodeRenderer interface {
	Encode(payload string) ([]byte, error)
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventPublisher
type EventPublisher interface {
	Publish(ctx context.Context, ev events.BookingEvent) error
}

type ReserveInput struct {
	PlaceKey         string
	PlaceDisplayName string
	CityDisplayName  string
	VisitDate        string
	VisitorCategory  string
}

type Service struct {
	log          *slog.Logger
	store        Store
	places       PlaceResolver
	codes        CodeRenderer
	publisher    EventPublisher
	categories   map[string]struct{}
	storeTimeout time.Duration
	now          func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithStoreTimeout bounds every single store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func New(
	log *slog.Logger,
	store Store,
	places PlaceResolver,
	codes CodeRenderer,
	categories []string,
	opts ...Option,
) *Service {
	s := &Service{
		log:          log,
		store:        store,
		places:       places,
		codes:        codes,
		publisher:    events.Noop{},
		categories:   make(map[string]struct{}, len(categories)),
		storeTimeout: defaultStoreTimeout,
		now:          time.Now,
	}

	for _, c := range categories {
		s.categories[normalizeCategory(c)] = struct{}{}
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Reserve books a visit for identity. Validation runs in a fixed order and the
// first failure wins: identity, date, category, place.
//
// The conflict check and the insert are two separate store calls. Stores that
// enforce the (user, place, day) uniqueness themselves close that gap; their
// rejection is reported as ErrDuplicateBooking too.
func (s *Service) Reserve(ctx context.Context, identity *models.Identity, in ReserveInput) (*models.Booking, error) {
	const op = "service.booking.Reserve"

	if identity == nil || identity.ID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", identity.ID),
		slog.String("place_key", in.PlaceKey),
	)

	visitDay, err := ParseVisitDate(in.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidDate)
	}
	if visitDay.Before(today(s.now())) {
		return nil, fmt.Errorf("%s: %w: %s is in the past", op, ErrInvalidDate, visitDay.Format(models.DateLayout))
	}

	category := normalizeCategory(in.VisitorCategory)
	if _, ok := s.categories[category]; !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCategory)
	}

	place, ok := s.resolvePlace(in.PlaceKey)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrUnknownPlace)
	}

	conflicts, err := s.findConflicts(ctx, identity.ID, place.Key, visitDay)
	if err != nil {
		return nil, s.storeErr(op, err)
	}
	if len(conflicts) > 0 {
		log.Info("booking conflict", slog.String("existing_id", conflicts[0].ID))
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateBooking)
	}

	b := models.Booking{
		UserID:           identity.ID,
		UserDisplayName:  identity.DisplayName,
		PlaceKey:         place.Key,
		PlaceDisplayName: firstNonEmpty(in.PlaceDisplayName, place.Name),
		CityDisplayName:  firstNonEmpty(in.CityDisplayName, place.City),
		VisitDate:        visitDay,
		VisitorCategory:  category,
	}

	created, err := s.insert(ctx, b)
	if err != nil {
		if errors.Is(err, storage.ErrBookingExists) {
			log.Info("booking conflict detected by store")
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateBooking)
		}
		return nil, s.storeErr(op, err)
	}

	log.Info("booking reserved",
		slog.String("booking_id", created.ID),
		slog.String("visit_date", created.VisitDate.Format(models.DateLayout)),
	)

	s.publish(ctx, events.TypeReserved, created)

	return &created, nil
}

// ListForUser returns the caller's tickets ordered by visit date, then by
// creation time. An anonymous caller gets an empty list, not an error.
func (s *Service) ListForUser(ctx context.Context, identity *models.Identity) ([]models.Ticket, error) {
	const op = "service.booking.ListForUser"

	if identity == nil || identity.ID == "" {
		return []models.Ticket{}, nil
	}

	log := s.log.With(slog.String("op", op), slog.String("user_id", identity.ID))

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	bookings, err := s.store.ListByUser(storeCtx, identity.ID)
	if err != nil {
		return nil, s.storeErr(op, err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].VisitDate.Equal(bookings[j].VisitDate) {
			return bookings[i].VisitDate.Before(bookings[j].VisitDate)
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})

	tickets := make([]models.Ticket, len(bookings))

	var wg sync.WaitGroup
	for i := range bookings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets[i] = s.ticket(log, bookings[i])
		}(i)
	}
	wg.Wait()

	return tickets, nil
}

// Cancel deletes a booking owned by identity. Confirmation is the caller's job.
func (s *Service) Cancel(ctx context.Context, identity *models.Identity, bookingID string) error {
	const op = "service.booking.Cancel"

	if identity == nil || identity.ID == "" {
		return fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", identity.ID),
		slog.String("booking_id", bookingID),
	)

	if strings.TrimSpace(bookingID) == "" {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	b, err := s.getByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return s.storeErr(op, err)
	}

	if b.UserID != identity.ID {
		log.Warn("cancel of foreign booking refused", slog.String("owner_id", b.UserID))
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	if err = s.delete(ctx, bookingID); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return s.storeErr(op, err)
	}

	log.Info("booking cancelled")

	s.publish(ctx, events.TypeCancelled, *b)

	return nil
}

// ReportDuplicates finds (user, place, day) tuples holding more than one
// booking and logs them for manual reconciliation. Nothing is deleted.
func (s *Service) ReportDuplicates(ctx context.Context) ([]models.DuplicateGroup, error) {
	const op = "service.booking.ReportDuplicates"

	log := s.log.With(slog.String("op", op))

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	groups, err := s.store.FindDuplicates(storeCtx)
	if err != nil {
		return nil, s.storeErr(op, err)
	}

	for _, g := range groups {
		log.Warn("duplicate bookings found",
			slog.String("user_id", g.UserID),
			slog.String("place_key", g.PlaceKey),
			slog.String("visit_date", g.VisitDate.Format(models.DateLayout)),
			slog.Any("booking_ids", g.BookingIDs),
		)
	}

	return groups, nil
}

func (s *Service) ticket(log *slog.Logger, b models.Booking) models.Ticket {
	t := models.Ticket{Booking: b}

	payload, err := Payload(b)
	if err != nil {
		log.Warn("failed to build ticket payload", slog.String("booking_id", b.ID), sl.Err(err))
		t.CodeError = ErrCodeUnavailable.Error()
		return t
	}
	t.Payload = payload

	png, err := s.codes.Encode(payload)
	if err != nil {
		log.Warn("failed to render ticket code", slog.String("booking_id", b.ID), sl.Err(err))
		t.CodeError = ErrCodeUnavailable.Error()
		return t
	}
	t.QRCode = png

	return t
}

func (s *Service) resolvePlace(key string) (models.Place, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Place{}, false
	}

	return s.places.Place(key)
}

func (s *Service) findConflicts(ctx context.Context, userID, placeKey string, day time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.store.FindByUserPlaceDay(ctx, userID, placeKey, day, day.AddDate(0, 0, 1))
}

func (s *Service) insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.store.Insert(ctx, b)
}

func (s *Service) getByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.store.GetByID(ctx, id)
}

func (s *Service) delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.store.Delete(ctx, id)
}

// publish is best effort: a lost event never undoes a committed booking.
func (s *Service) publish(ctx context.Context, typ string, b models.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	ev := events.BookingEvent{
		Type:            typ,
		BookingID:       b.ID,
		UserID:          b.UserID,
		PlaceKey:        b.PlaceKey,
		VisitDate:       b.VisitDate.Format(models.DateLayout),
		VisitorCategory: b.VisitorCategory,
		OccurredAt:      s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Error("failed to publish booking event",
			slog.String("type", typ),
			slog.String("booking_id", b.ID),
			sl.Err(err),
		)
	}
}

// storeErr marks timeouts and unavailability as ErrTransient. The outcome of
// a timed-out write is unknown.
func (s *Service) storeErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, storage.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// ParseVisitDate accepts a calendar date ("2006-01-02") or an RFC 3339
// timestamp, whose time of day is dropped. The result is midnight UTC.
func ParseVisitDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)

	if d, err := time.Parse(models.DateLayout, v); err == nil {
		return d, nil
	}

	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
}

func today(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
