package enrollmentsystem

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/enrollment-system/internal/cache"
	"github.com/magabrotheeeer/enrollment-system/internal/config"
	"github.com/magabrotheeeer/enrollment-system/internal/rabbitmq"
	attendanceservice "github.com/magabrotheeeer/enrollment-system/internal/services/attendance"
	billingservice "github.com/magabrotheeeer/enrollment-system/internal/services/billing"
	subjectservice "github.com/magabrotheeeer/enrollment-system/internal/services/subject"
	userservice "github.com/magabrotheeeer/enrollment-system/internal/services/user"
	"github.com/magabrotheeeer/enrollment-system/internal/storage/mongodb"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *mongodb.Storage
	amqpConn *amqp.Connection
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongodb.New(ctx, cfg.URI, cfg.Database, cfg.TimeoutMongo)
	if err != nil {
		return nil, err
	}
	if err = db.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Публикация событий биллинга опциональна: без адреса rabbitmq
	// сервис работает с отключенным publisher.
	var amqpConn *amqp.Connection
	var publisher billingservice.Publisher
	if cfg.AddressAMQP != "" {
		amqpConn, err = rabbitmq.Connect(cfg.AddressAMQP, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetBillingQueues())
		if err != nil {
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	userService := userservice.New(db, logger)
	subjectService := subjectservice.New(db, cacheRedis, logger)
	attendanceService := attendanceservice.New(db, logger)
	billingService := billingservice.New(db, subjectService, publisher, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, userService, subjectService, attendanceService, billingService, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		amqpConn: amqpConn,
	}, nil
}

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
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		_ = a.db.Close(timeoutCtx)
		return err
	}
}
