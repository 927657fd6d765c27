package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"visitBooker/internal/models"
	"visitBooker/internal/storage"
)

const (
	codeUniqueViolation   = "23505"
	codeInvalidTextFormat = "22P02"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db *sqlx.DB
}

func New(dsn string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Migrate applies the embedded goose migrations.
func (s *Storage) Migrate() error {
	const op = "storage.postgres.Migrate"

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.Up(s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) FindByUserPlaceDay(ctx context.Context, userID, placeKey string, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.FindByUserPlaceDay"

	query := `
		SELECT id, user_id, user_display_name, place_key, place_display_name,
		       city_display_name, visit_date, visitor_category, created_at
		FROM bookings
		WHERE user_id = $1 AND place_key = $2 AND visit_date >= $3 AND visit_date < $4`

	var bookings []models.Booking
	if err := s.db.SelectContext(ctx, &bookings, query, userID, placeKey, dayStart, dayEnd); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return normalize(bookings), nil
}

func (s *Storage) Insert(ctx context.Context, b models.Booking) (models.Booking, error) {
	const op = "storage.postgres.Insert"

	b.ID = uuid.NewString()

	query := `
		INSERT INTO bookings (id, user_id, user_display_name, place_key, place_display_name,
		                      city_display_name, visit_date, visitor_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	err := s.db.QueryRowxContext(ctx, query,
		b.ID,
		b.UserID,
		b.UserDisplayName,
		b.PlaceKey,
		b.PlaceDisplayName,
		b.CityDisplayName,
		b.VisitDate,
		b.VisitorCategory,
	).Scan(&b.CreatedAt)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingExists)
		}

		return models.Booking{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	return b, nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	const op = "storage.postgres.GetByID"

	query := `
		SELECT id, user_id, user_display_name, place_key, place_display_name,
		       city_display_name, visit_date, visitor_category, created_at
		FROM bookings
		WHERE id = $1`

	var b models.Booking
	err := s.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}

		// A malformed id can never match a UUID primary key.
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextFormat {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	b.VisitDate = b.VisitDate.UTC()

	return &b, nil
}

func (s *Storage) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	const op = "storage.postgres.ListByUser"

	query := `
		SELECT id, user_id, user_display_name, place_key, place_display_name,
		       city_display_name, visit_date, visitor_category, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY visit_date ASC, created_at ASC`

	var bookings []models.Booking
	if err := s.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}

	return normalize(bookings), nil
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.postgres.Delete"

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

func (s *Storage) FindDuplicates(ctx context.Context) ([]models.DuplicateGroup, error) {
	const op = "storage.postgres.FindDuplicates"

	query := `
		SELECT user_id, place_key, visit_date, array_agg(id::text ORDER BY created_at) AS ids
		FROM bookings
		GROUP BY user_id, place_key, visit_date
		HAVING COUNT(*) > 1`

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	defer rows.Close()

	var groups []models.DuplicateGroup
	for rows.Next() {
		var g models.DuplicateGroup
		if err = rows.Scan(&g.UserID, &g.PlaceKey, &g.VisitDate, pq.Array(&g.BookingIDs)); err != nil {
			return nil, fmt.Errorf("%s: failed to scan duplicate group: %w", op, err)
		}
		g.VisitDate = g.VisitDate.UTC()
		groups = append(groups, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating duplicate groups: %w", op, err)
	}

	return groups, nil
}

func normalize(bookings []models.Booking) []models.Booking {
	for i := range bookings {
		bookings[i].VisitDate = bookings[i].VisitDate.UTC()
	}

	return bookings
}

// classify tags connection-level failures with storage.ErrUnavailable so the
// service can report them as transient.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}

	return err
}
