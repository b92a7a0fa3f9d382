package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ashwith-Garlapati/dev-event/config"
	"github.com/Ashwith-Garlapati/dev-event/internal/adapters/email"
	"github.com/Ashwith-Garlapati/dev-event/internal/adapters/eventapi"
	"github.com/Ashwith-Garlapati/dev-event/internal/cache"
	deliveryhttp "github.com/Ashwith-Garlapati/dev-event/internal/delivery/http"
	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/controllers"
	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
	"github.com/Ashwith-Garlapati/dev-event/internal/metrics"
	"github.com/Ashwith-Garlapati/dev-event/internal/repository/postgres"
	"github.com/Ashwith-Garlapati/dev-event/internal/services"

	_ "github.com/Ashwith-Garlapati/dev-event/docs"
)

const shutdownTimeout = 30 * time.Second

// @title           DevEvent API
// @version         1.0
// @description     Developer event listings, event pages and bookings.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The connection is opened on first use; startup tolerates an unreachable database.
	connector := postgres.NewConnector(cfg.DBUrl, logger)
	defer connector.Close()

	if err := postgres.RunMigrations(ctx, connector, logger); err != nil {
		logger.Warn("migrations not applied, continuing", "err", err)
	}

	eventRepo := postgres.NewEventRepository(connector)
	bookingRepo := postgres.NewBookingRepository(connector)

	if cfg.SeedSampleEvents {
		if err := postgres.SeedEvents(ctx, eventRepo, postgres.SampleEvents(), logger); err != nil {
			logger.Warn("seeding sample events failed", "err", err)
		}
	}

	eventCache, redisClient := newEventCache(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AccessKeyID,
			SecretAccessKey: cfg.Email.SecretAccessKey,
			Endpoint:        cfg.Email.SESEndpoint,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	m := metrics.New()

	eventService := services.NewEventService(eventRepo, m, logger, cfg.ContextTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, emailService, m, logger, cfg.BaseURL, cfg.ContextTimeout)
	pageService := services.NewPageService(
		eventapi.NewHTTPFetcher(cfg.BaseURL, nil),
		eventCache,
		eventService,
		bookingRepo,
		logger,
		cfg.ContextTimeout,
	)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Events:         controllers.NewEventController(logger, eventService),
		Pages:          controllers.NewPageController(logger, pageService),
		Bookings:       controllers.NewBookingController(logger, bookingService),
		Health:         controllers.NewHealthController(logger, connector),
		Metrics:        m,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Environment)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newEventCache uses Redis when REDIS_ADDR is set and reachable, and the in-process cache otherwise.
func newEventCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.EventCache, *redis.Client) {
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			logger.Info("event cache: redis", "addr", cfg.Redis.Addr)
			return cache.NewRedisEventCache(client, cfg.EventCacheTTL), client
		}
		logger.Warn("redis unavailable, using in-process event cache", "addr", cfg.Redis.Addr, "err", err)
	}
	return cache.NewMemoryEventCache(cache.DefaultMemorySize, cfg.EventCacheTTL), nil
}
