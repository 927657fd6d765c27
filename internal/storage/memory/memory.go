// Package memory keeps bookings in process. It backs local runs and tests,
// and enforces the (user, place, visit day) uniqueness under its lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"visitBooker/internal/models"
	"visitBooker/internal/storage"
)

type Storage struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
	now      func() time.Time
}

func New() *Storage {
	return &Storage{
		bookings: make(map[string]models.Booking),
		now:      time.Now,
	}
}

func (s *Storage) FindByUserPlaceDay(ctx context.Context, userID, placeKey string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	const op = "storage.memory.FindByUserPlaceDay"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []models.Booking
	for _, b := range s.bookings {
		if b.UserID != userID || b.PlaceKey != placeKey {
			continue
		}
		if b.VisitDate.Before(dayStart) || !b.VisitDate.Before(dayEnd) {
			continue
		}
		res = append(res, b)
	}

	return res, nil
}

func (s *Storage) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	const op = "storage.memory.Insert"

	if err := ctx.Err(); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	day := b.VisitDate.UTC().Truncate(24 * time.Hour)
	for _, existing := range s.bookings {
		if existing.UserID == b.UserID &&
			existing.PlaceKey == b.PlaceKey &&
			existing.VisitDate.UTC().Truncate(24*time.Hour).Equal(day) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingExists)
		}
	}

	b.ID = uuid.NewString()
	b.CreatedAt = s.now().UTC()
	s.bookings[b.ID] = b

	return b, nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.memory.GetByID"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return &b, nil
}

func (s *Storage) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	const op = "storage.memory.ListByUser"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			res = append(res, b)
		}
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].VisitDate.Equal(res[j].VisitDate) {
			return res[i].VisitDate.Before(res[j].VisitDate)
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})

	return res, nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.memory.Delete"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	delete(s.bookings, id)

	return nil
}

func (s *Storage) FindDuplicates(ctx context.Context) ([]models.DuplicateGroup, error) {
	const op = "storage.memory.FindDuplicates"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	type tuple struct {
		userID   string
		placeKey string
		day      time.Time
	}

	s.mu.RLock()
	groups := make(map[tuple][]models.Booking)
	for _, b := range s.bookings {
		k := tuple{b.UserID, b.PlaceKey, b.VisitDate.UTC().Truncate(24 * time.Hour)}
		groups[k] = append(groups[k], b)
	}
	s.mu.RUnlock()

	var res []models.DuplicateGroup
	for k, bs := range groups {
		if len(bs) < 2 {
			continue
		}

		sort.Slice(bs, func(i, j int) bool { return bs[i].CreatedAt.Before(bs[j].CreatedAt) })

		g := models.DuplicateGroup{UserID: k.userID, PlaceKey: k.placeKey, VisitDate: k.day}
		for _, b := range bs {
			g.BookingIDs = append(g.BookingIDs, b.ID)
		}
		res = append(res, g)
	}

	return res, nil
}
