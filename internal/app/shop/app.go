// Package shop собирает приложение магазина: хранилище, кеш, публикацию событий,
// сервисы, HTTP-маршруты и gRPC-сервер проверки здоровья.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/shop-backend/internal/cache"
	"github.com/magabrotheeeer/shop-backend/internal/config"
	"github.com/magabrotheeeer/shop-backend/internal/events"
	"github.com/magabrotheeeer/shop-backend/internal/grpc/server"
	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/shop-backend/internal/lib/sl"
	"github.com/magabrotheeeer/shop-backend/internal/metrics"
	"github.com/magabrotheeeer/shop-backend/internal/migrations"
	authservice "github.com/magabrotheeeer/shop-backend/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/shop-backend/internal/services/catalog"
	orderservice "github.com/magabrotheeeer/shop-backend/internal/services/order"
	"github.com/magabrotheeeer/shop-backend/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// listCache описывает кеш списков каталога: redis или заглушку.
type listCache interface {
	catalogservice.Cache
	orderservice.Invalidator
}

// App представляет собранное приложение магазина.
type App struct {
	server   *http.Server
	health   *server.HealthServer
	grpcAddr string
	logger   *slog.Logger
	db       *repository.Storage
	closers  []func() error
}

// New подключается к зависимостям, применяет миграции и собирает сервисы.
// Redis и RabbitMQ необязательны: при пустом адресе или ошибке подключения
// используются заглушки.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.shop.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		grpcAddr: cfg.AddressGRPC,
		logger:   logger,
		db:       db,
	}

	var lists listCache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", sl.Err(err))
		} else {
			lists = redisCache
			app.closers = append(app.closers, redisCache.Close)
		}
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.URLRabbitMQ != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ)
		if err != nil {
			logger.Warn("rabbitmq unavailable, order events disabled", sl.Err(err))
		} else {
			publisher = amqpPublisher
			app.closers = append(app.closers, amqpPublisher.Close)
		}
	}

	m := metrics.New()
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	gate := authservice.NewGate(jwtMaker)

	authService := authservice.NewAuthService(db, jwtMaker,
		authservice.Options{DisableAdminSignup: cfg.DisableAdminSignup}, logger)
	catalogService := catalogservice.NewService(db, lists, gate, cfg.CacheTTL, logger)
	orderService := orderservice.NewService(db, gate, lists, publisher, m, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:      logger,
		Auth:        authService,
		Catalog:     catalogService,
		Orders:      orderService,
		DB:          db,
		Metrics:     m,
		Limiter:     middlewarectx.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	if cfg.AddressGRPC != "" {
		app.health = server.NewHealthServer(db, cfg.HealthCheckInterval, logger)
	}
	return app, nil
}

// Run обслуживает HTTP и gRPC до отмены ctx, затем останавливает серверы
// и закрывает подключения.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.health != nil {
		lis, err := net.Listen("tcp", a.grpcAddr)
		if err != nil {
			a.shutdown()
			return fmt.Errorf("app.shop.Run: %w", err)
		}
		go func() {
			if err := a.health.Serve(ctx, lis); err != nil {
				errCh <- err
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	a.logger.Info("shutting down gracefully")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(timeoutCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", sl.Err(err))
	}
	if a.health != nil {
		a.health.GracefulStop()
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("failed to close connection", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
