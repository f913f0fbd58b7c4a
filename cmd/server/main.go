package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dispatch/internal/app"
	"dispatch/internal/config"
	"dispatch/internal/docstore"
	"dispatch/internal/handler"
	internalRedis "dispatch/internal/redis"
	"dispatch/internal/repository/document"
	"dispatch/internal/store"
)

func main() {
	envPath := config.LoadDotEnv(6)

	// Load configuration.
	cfg := config.Load()

	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	if envPath != "" {
		logger.Info("loaded environment file", zap.String("path", envPath))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// The database is only needed by the postgres document store.
	var db *sql.DB
	if cfg.DocStore.Backend == config.DocStorePostgres {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		logger.Info("connected to PostgreSQL", zap.String("host", cfg.Database.Host))
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	docs, err := app.NewDocumentStore(ctx, cfg.DocStore, db, redisClient, logger)
	if err != nil {
		logger.Fatal("failed to initialize document store", zap.Error(err))
	}

	if cfg.Log.Env == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire dependencies.
	st := newStore(docs, redisClient, logger)
	server := wireServer(st, redisClient, nrApp, logger, cfg)

	// Load drivers and cargos in the background; failures are logged by the
	// store and the collections stay empty until the next sync.
	go func() {
		bootCtx, bootCancel := context.WithTimeout(context.Background(), cfg.DocStore.BootstrapTimeout)
		defer bootCancel()
		store.NewAbsorbing(st).Bootstrap(bootCtx)
		logger.Info("store bootstrapped",
			zap.Int("drivers", len(st.Drivers())),
			zap.Int("cargos", len(st.Cargos())),
		)
	}()

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited")
}

// newStore builds the application store over the document repositories.
func newStore(docs docstore.Store, redisClient *redis.Client, logger *zap.Logger) *store.Store {
	driverRepo := document.NewDriverRepository(docs)
	cargoRepo := document.NewCargoRepository(docs)

	// A typed nil *LockStore must not reach the interface.
	var lockStore internalRedis.LockStoreInterface
	if redisClient != nil {
		lockStore = internalRedis.NewLockStore(redisClient)
	}

	return store.New(driverRepo, cargoRepo, lockStore, logger.Named("store"))
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(st *store.Store, redisClient *redis.Client, nrApp *newrelic.Application, logger *zap.Logger, cfg *config.Config) *http.Server {
	// Initialize handlers.
	driverHandler := handler.NewDriverHandler(st)
	cargoHandler := handler.NewCargoHandler(st)
	stateHandler := handler.NewStateHandler(st)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		DriverHandler: driverHandler,
		CargoHandler:  cargoHandler,
		StateHandler:  stateHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
		Logger:        logger.Named("http"),
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
