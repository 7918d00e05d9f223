package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-service/internal/auth"
	"storefront-service/internal/clients"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/pages"
	"storefront-service/internal/persistence"
	"storefront-service/internal/seed"
	"storefront-service/internal/store"
)

// @title Storefront Management API
// @version 1.0.0
// @description Products, orders, customers, catalog, discounts, content pages and store settings for one storefront namespace

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	if cfg.UseSecretManager && cfg.GCPProjectID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		gcp, err := config.NewGCPSecrets(ctx, cfg.GCPProjectID)
		if err != nil {
			logger.WithError(err).Warn("Secret Manager unavailable, using environment secrets")
		} else {
			cfg.ApplySecrets(ctx, gcp, logger)
			_ = gcp.Close()
		}
		cancel()
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	storage, readiness, err := openStorage(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}

	profile, err := seed.ParseProfile(cfg.SeedProfile)
	if err != nil {
		logger.WithError(err).Fatal("Invalid seed profile")
	}

	// Collaborators
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	opts := []store.Option{
		store.WithIdentity(store.IdentityFunc(auth.ActorFromContext)),
		store.WithConfirmer(store.ContextConfirmer{}),
		store.WithLogger(logger),
	}
	if cfg.MediaServiceURL != "" {
		opts = append(opts, store.WithMediaLibrary(clients.NewMediaClient(clients.Config{
			BaseURL:        cfg.MediaServiceURL,
			Token:          cfg.ServiceToken,
			RequestsPerSec: cfg.RequestsPerSec,
		})))
	}
	st := store.New(opts...)

	syncer := persistence.NewSyncer(storage, st, persistence.SyncerConfig{
		Namespace:  cfg.Namespace,
		Window:     cfg.SyncWindow,
		MaxRetries: cfg.SyncMaxRetries,
		Logger:     logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	base := seed.Snapshot(profile)
	snapshot, restored, err := syncer.Restore(ctx, base)
	cancel()
	if err != nil {
		logger.WithError(err).Error("Failed to restore namespace; serving seed data with persistence writes held")
		snapshot = base
	}
	st.Load(snapshot)
	logger.WithFields(logrus.Fields{"namespace": cfg.Namespace, "restored": restored, "backend": cfg.StorageBackend}).Info("Store loaded")
	readiness["persistence"] = syncer.Ready
	st.Subscribe(func(c store.Change) { syncer.Notify(c.Slices...) })

	// Initialize event publisher only if NATS_URL is set
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		publisher, err = events.Connect(ctx, cfg.NATSURL, cfg.Namespace, logger)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize events publisher (continuing without event publishing)")
			publisher = nil
		} else {
			st.Subscribe(publisher.ChangeHandler())
			readiness["nats"] = func(context.Context) error {
				if !publisher.IsConnected() {
					return errors.New("nats disconnected")
				}
				return nil
			}
		}
	} else {
		logger.Info("NATS_URL not set, skipping event publishing initialization")
	}

	var registry pages.Registry = pages.NewMemoryRegistry()
	if cfg.PageRegistryURL != "" {
		registry = clients.NewPageRegistryClient(clients.Config{
			BaseURL:        cfg.PageRegistryURL,
			Token:          cfg.ServiceToken,
			RequestsPerSec: cfg.RequestsPerSec,
		})
	}
	projector := pages.NewProjector(registry, logger)
	st.Subscribe(projector.ChangeHandler(st))

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	health := handlers.NewHealthHandler(syncer, readiness)
	router.GET("/health", health.Health)
	router.GET("/ready", health.Ready)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(tokens, cfg.IsDevelopment(), logger))
	api.Use(middleware.Confirmation())
	handlers.RegisterRoutes(api, st, projector, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Storefront service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	if err := syncer.Close(shutdownCtx); err != nil {
		logger.WithError(err).Error("Final flush failed")
	}
	projector.Wait()
	if publisher != nil {
		publisher.Close()
	}
	logger.Info("Server exited")
}

// openStorage selects the namespace storage backend and returns its readiness checks
func openStorage(cfg *config.Config, logger *logrus.Logger) (persistence.Storage, map[string]handlers.ReadinessCheck, error) {
	checks := map[string]handlers.ReadinessCheck{}
	switch cfg.StorageBackend {
	case config.BackendRedis:
		client, err := config.InitRedis(cfg)
		if err != nil {
			return nil, nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis not reachable yet, writes will retry")
		} else {
			logger.Info("Redis connected")
		}
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return persistence.NewRedisStorage(client, ""), checks, nil
	case config.BackendPostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		pg := persistence.NewPostgresStorage(db)
		if err := pg.Migrate(); err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		checks["postgres"] = sqlDB.PingContext
		return pg, checks, nil
	default:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return persistence.NewMemoryStorage(), checks, nil
	}
}
