package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TheDTCStore/dtc-store-mobile/internal/catalog"
	"github.com/TheDTCStore/dtc-store-mobile/internal/config"
	"github.com/TheDTCStore/dtc-store-mobile/internal/domain"
	"github.com/TheDTCStore/dtc-store-mobile/internal/event"
	handler "github.com/TheDTCStore/dtc-store-mobile/internal/handler/http"
	redisrepo "github.com/TheDTCStore/dtc-store-mobile/internal/repository/redis"
	"github.com/TheDTCStore/dtc-store-mobile/internal/service"
	"github.com/TheDTCStore/dtc-store-mobile/internal/session"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/health"
	pkgkafka "github.com/TheDTCStore/dtc-store-mobile/pkg/kafka"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/middleware"
	"github.com/TheDTCStore/dtc-store-mobile/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingCfg := tracing.DefaultConfig("store")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	cat := catalog.NewSeededRepository(cfg.CatalogLatency)
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTL)
	orderRepo := redisrepo.NewOrderRepository(rdb)
	favoritesRepo := redisrepo.NewFavoritesRepository(rdb)
	addressRepo := redisrepo.NewAddressRepository(rdb)
	sessions := session.NewStore(rdb, cfg.SessionTTL)
	accounts := session.DefaultAccounts()
	eventProducer := event.NewProducer(producer, logger)

	catalogService := service.NewCatalogService(cat)
	cartService := service.NewCartService(cartRepo, cat, eventProducer, logger, cfg.CartTTL)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, domain.DefaultCouponBook(), eventProducer, logger, cfg.CartTTL)
	authService := service.NewAuthService(accounts, sessions, logger)
	profileService := service.NewProfileService(favoritesRepo, addressRepo, cat, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	// Events are fire-and-forget; a dead broker degrades readiness but the
	// store keeps serving.
	healthHandler.RegisterNonCritical("kafka", producer.Ping)

	// CORS.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	// HTTP router.
	router := handler.NewRouter(handler.RouterDeps{
		Catalog:       catalogService,
		Cart:          cartService,
		Checkout:      checkoutService,
		Auth:          authService,
		Profile:       profileService,
		SessionValid:  sessions.Validator(),
		HealthHandler: healthHandler,
		Logger:        logger,
		CORS:          corsCfg,
		PprofCIDRs:    cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
