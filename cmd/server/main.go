package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"explorewithme/config"
	_ "explorewithme/docs"
	"explorewithme/internal/adapters/auth"
	"explorewithme/internal/adapters/stats"
	deliveryhttp "explorewithme/internal/delivery/http"
	"explorewithme/internal/delivery/http/controllers"
	"explorewithme/internal/delivery/http/middleware"
	"explorewithme/internal/domain"
	"explorewithme/internal/repository/memory"
	"explorewithme/internal/repository/postgres"
	"explorewithme/internal/services"

	_ "github.com/lib/pq"
)

const shutdownTimeout = 10 * time.Second

// @title Explore With Me API
// @version 1.0
// @description Event listing with moderated participation requests.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	counter := stats.NewClient(cfg.StatsURL, &http.Client{Timeout: cfg.RequestTimeout})
	events := services.NewEventService(stores, cfg.EventLeadTime, cfg.RequestTimeout)
	participation := services.NewParticipationService(stores, cfg.RequestTimeout)
	queries := services.NewEventQueryService(stores, counter, cfg.StatsApp, logger, cfg.RequestTimeout)

	handler := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Events:         controllers.NewEventController(logger, events, queries, participation),
		Requests:       controllers.NewRequestController(logger, participation),
		Public:         controllers.NewPublicEventController(logger, queries),
		Admin:          controllers.NewAdminEventController(logger, events, queries),
		Verifier:       auth.NewJWT(cfg.JWTSecret),
		PublicLimiter:  middleware.NewRateLimiter(cfg.PublicRatePerMinute, cfg.PublicRateBurst),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Stores, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		store := memory.New()
		if cfg.SeedDemoData {
			seedDemoData(store, logger)
		}
		return services.Stores{
			Tx:         store,
			Events:     store.Events(),
			Requests:   store.Requests(),
			Categories: store.Categories(),
			Users:      store.Users(),
			Locations:  store.Locations(),
			Ledger:     store.Ledger(),
		}, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return services.Stores{}, nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return services.Stores{}, nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return services.Stores{}, nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("connected to postgres")

	return services.Stores{
		Tx:         postgres.NewTransactor(db),
		Events:     postgres.NewEventRepository(db),
		Requests:   postgres.NewRequestRepository(db),
		Categories: postgres.NewCategoryRepository(db),
		Users:      postgres.NewUserRepository(db),
		Locations:  postgres.NewLocationRepository(db),
		Ledger:     postgres.NewCapacityLedger(db),
	}, func() { _ = db.Close() }, nil
}

func seedDemoData(store *memory.Store, logger *slog.Logger) {
	for _, name := range []string{"Concerts", "Exhibitions", "Workshops"} {
		c := store.AddCategory(domain.Category{Name: name})
		logger.Info("seeded category", "id", c.ID, "name", c.Name)
	}
	for _, name := range []string{"Organizer", "Guest"} {
		u := store.AddUser(domain.UserShort{Name: name})
		logger.Info("seeded user", "id", u.ID, "name", u.Name)
	}
}
