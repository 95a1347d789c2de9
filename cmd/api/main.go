package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"portfolio-api/cmd/api/auth"
	"portfolio-api/cmd/api/router"
	"portfolio-api/config"
	"portfolio-api/internal/logger"
	"portfolio-api/storage"
)

// @title           Portfolio API
// @version         1.0
// @description     Personal portfolio backend with blog and admin CMS
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Log.Errorf("invalid configuration: %v", err)
		return
	}
	if cfg.UsingDefaultSessionSecret() {
		logger.Log.Warn("SESSION_SECRET is not set; using the default secret, do not do this in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, sessions, cleanup, err := buildBackend(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("could not initialize storage backend: %v", err)
		return
	}
	defer cleanup()

	ensureAdminUser(ctx, store, cfg.Admin)

	cookies := auth.NewCookieManager(cfg.Session.Secret, cfg.Session.TTL(), cfg.Session.SecureCookies)
	r := router.New(store, sessions, cookies)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsHandler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Log.Infof("serving on port %d storage=%s", cfg.Server.Port, cfg.Storage.Type)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("server error: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("shutdown error: %v", err)
		}
	}
}

// buildBackend selects the storage backend and matching session store from
// config. The choice is made once here and fixed for the process lifetime.
func buildBackend(ctx context.Context, cfg config.AppConfig) (storage.Storage, auth.SessionStore, func(), error) {
	switch cfg.Storage.Type {
	case config.StorageMongoDB:
		mongoStore, err := storage.NewMongoStorage(storage.MongoOptions{
			URI:             cfg.Storage.MongoURI,
			Database:        cfg.Storage.MongoDatabase,
			MinPoolSize:     cfg.Storage.MongoMinPoolSize,
			MaxPoolSize:     cfg.Storage.MongoMaxPoolSize,
			MaxConnIdleTime: cfg.Storage.MongoIdleTimeout(),
		})
		if err != nil {
			return nil, nil, nil, err
		}
		// Connection failures at startup are not fatal: the client is cached
		// lazily, so the first request after the database comes up reconnects.
		if err := mongoStore.Connect(ctx); err != nil {
			logger.Log.Warnf("mongodb not reachable yet, will retry on demand: %v", err)
		}
		sessions := auth.NewMongoSessionStore(mongoStore, cfg.Session.TTL())
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoStore.Close(closeCtx)
		}
		return mongoStore, sessions, cleanup, nil

	case config.StorageMemory:
		logger.Log.Warn("using in-memory storage; data will not survive a restart")
		return storage.NewMemoryStorage(), auth.NewMemorySessionStore(cfg.Session.TTL()), func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
}
