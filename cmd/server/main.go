// @title Event Planner API
// @version 1.0
// @description Conference events, rooms and per-user favorites.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventplanner/config"
	_ "eventplanner/docs"
	"eventplanner/internal/adapters/auth"
	"eventplanner/internal/adapters/calendar"
	httpdelivery "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
	"eventplanner/internal/repository/memory"
	"eventplanner/internal/repository/postgres"
	"eventplanner/internal/seed"
	"eventplanner/internal/services"
	"eventplanner/migrations"

	_ "github.com/lib/pq"
)

type repositories struct {
	events    domain.EventRepository
	rooms     domain.RoomRepository
	users     domain.UserRepository
	favorites domain.FavoriteRepository
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	// After Load so LOG_LEVEL from .env applies.
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewJWT(cfg.JWTSecret)

	if cfg.Seed {
		data, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		seeder := seed.NewSeeder(repos.rooms, repos.users, repos.events, hasher, logger)
		if err := seeder.Run(ctx, data); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	validator := services.NewEventValidator(nil)
	eventSvc := services.NewEventService(repos.events, repos.rooms, validator, cfg.RequestTimeout)
	roomSvc := services.NewRoomService(repos.rooms, cfg.RequestTimeout)
	authSvc := services.NewAuthService(repos.users, hasher, tokens, cfg.JWTExpiry)
	favorites := services.NewFavoritesManager(repos.favorites, cfg.MaxFavorites)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:      controllers.NewAuthController(logger, authSvc),
		Events:    controllers.NewEventController(logger, eventSvc, favorites, authSvc),
		Rooms:     controllers.NewRoomController(logger, roomSvc, eventSvc),
		Favorites: controllers.NewFavoriteController(logger, favorites, eventSvc, roomSvc, authSvc, calendar.NewExporter(calendar.DefaultDuration)),
	}, tokens, logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.Storage, "max_favorites", cfg.MaxFavorites)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		logger.Warn("using in-memory storage; data is lost on restart")
		return &repositories{
			events:    store.Events(),
			rooms:     store.Rooms(),
			users:     store.Users(),
			favorites: store.Favorites(),
			close:     func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := migrations.Up(ctx, db, logger); err != nil {
		db.Close()
		return nil, err
	}
	return &repositories{
		events:    postgres.NewEventRepository(db),
		rooms:     postgres.NewRoomRepository(db),
		users:     postgres.NewUserRepository(db),
		favorites: postgres.NewFavoriteRepository(db),
		close:     db.Close,
	}, nil
}
