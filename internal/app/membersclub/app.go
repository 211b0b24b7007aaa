// Package membersclub собирает приложение клуба: хранилище, кэш,
// бизнес-сервисы, маршруты и HTTP-сервер с корректным завершением.
package membersclub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/members-club/internal/cache"
	"github.com/magabrotheeeer/members-club/internal/config"
	"github.com/magabrotheeeer/members-club/internal/lib/token"
	"github.com/magabrotheeeer/members-club/internal/migrations"
	authservice "github.com/magabrotheeeer/members-club/internal/services/auth"
	clubservice "github.com/magabrotheeeer/members-club/internal/services/club"
	messageservice "github.com/magabrotheeeer/members-club/internal/services/message"
	sessionservice "github.com/magabrotheeeer/members-club/internal/services/session"
	"github.com/magabrotheeeer/members-club/internal/storage"
)

// App хранит собранный HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New подключается к Postgres и Redis, накатывает миграции,
// собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	// Миграции применены, схема обязана быть на месте.
	if err = storage.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	tokenMaker := token.NewMaker(cfg.CookieSecret, cfg.SessionTTL)

	authService := authservice.New(db)
	sessionService := sessionservice.New(db, db, tokenMaker, cfg.SessionTTL, logger)
	clubService := clubservice.New(db, cfg.Club, logger)
	messageService := messageservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg,
		authService, sessionService, clubService, messageService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
