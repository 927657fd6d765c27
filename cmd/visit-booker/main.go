package main

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"visitBooker/internal/catalog"
	"visitBooker/internal/config"
	"visitBooker/internal/events"
	"visitBooker/internal/http-server/handlers/booking/cancelBooking"
	"visitBooker/internal/http-server/handlers/booking/listTickets"
	"visitBooker/internal/http-server/handlers/booking/reserveBooking"
	"visitBooker/internal/http-server/handlers/place/getAllPlaces"
	"visitBooker/internal/http-server/handlers/place/getPlaceInfo"
	"visitBooker/internal/http-server/middleware/mwauth"
	"visitBooker/internal/http-server/middleware/mwlogger"
	"visitBooker/internal/http-server/middleware/ratelimit"
	"visitBooker/internal/lib/logger/handlers/slogpretty"
	"visitBooker/internal/lib/logger/sl"
	"visitBooker/internal/qr"
	"visitBooker/internal/service/booking"
	"visitBooker/internal/storage/memory"
	"visitBooker/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting visit booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	store, closeStore, err := setupStore(log, cfg.Database)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	places, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Error("failed to load place catalog", sl.Err(err))
		os.Exit(1)
	}

	log.Info("place catalog loaded", slog.Int("cities", len(places.Cities())))

	publisher, closePublisher := setupPublisher(log, cfg.AMQP)

	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	bookings := booking.New(
		log,
		store,
		places,
		qr.New(cfg.QRCode.Size),
		cfg.Booking.VisitorCategories,
		booking.WithStoreTimeout(cfg.Booking.StoreTimeout),
		booking.WithPublisher(publisher),
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(mwauth.New(log, cfg.Auth.JWTSecret))
	router.Use(ratelimit.New(log, cfg.RateLimit, rdb))

	router.Get("/places", getAllPlaces.New(log, places))
	router.Get("/places/{city}/{place}", getPlaceInfo.New(log, places))

	router.Post("/bookings", reserveBooking.New(log, bookings))
	router.Get("/bookings", listTickets.New(log, bookings))
	router.Delete("/bookings/{id}", cancelBooking.New(log, bookings))

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stopReconcile := context.WithCancel(context.Background())
	defer stopReconcile()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		ticker := time.NewTicker(cfg.Reconcile.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := bookings.ReportDuplicates(ctx); err != nil {
					log.Error("failed to report duplicate bookings", sl.Err(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	stopReconcile()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis client", sl.Err(err))
		}
	}

	if err = closePublisher(); err != nil {
		log.Error("failed to close event publisher", sl.Err(err))
	}

	if err = closeStore(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStore(log *slog.Logger, cfg config.Database) (booking.Store, func() error, error) {
	if cfg.Driver == "memory" {
		log.Warn("using in-memory storage, bookings are lost on restart")
		return memory.New(), func() error { return nil }, nil
	}

	storage, err := postgres.New(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	if err = storage.Migrate(); err != nil {
		_ = storage.Close()
		return nil, nil, err
	}

	log.Info("postgres storage ready", slog.String("host", cfg.Host), slog.String("db", cfg.DBName))

	return storage, storage.Close, nil
}

// setupPublisher falls back to dropping events when the broker is disabled or
// unreachable; bookings never depend on it.
func setupPublisher(log *slog.Logger, cfg config.AMQP) (booking.EventPublisher, func() error) {
	noop := func() error { return nil }

	if !cfg.Enabled {
		return events.Noop{}, noop
	}

	publisher, err := events.New(cfg.URL, cfg.Queue)
	if err != nil {
		log.Error("failed to connect to broker, booking events disabled", sl.Err(err))
		return events.Noop{}, noop
	}

	log.Info("booking events enabled", slog.String("queue", cfg.Queue))

	return publisher, publisher.Close
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
