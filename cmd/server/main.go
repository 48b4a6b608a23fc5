package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todolists/internal/config"
	"todolists/internal/database"
	"todolists/internal/handlers"
	"todolists/internal/logging"
	"todolists/internal/middleware"
	"todolists/internal/session"
	"todolists/internal/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const slowQueryThreshold = 200 * time.Millisecond

func main() {
	// Initialize logging first
	logging.InitLogger(logging.NewLogConfigFromEnv())

	cfg, err := config.Load("")
	if err != nil {
		logging.Logger.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The backend is chosen once; handlers only ever see the bound ListService
	var (
		db      *gorm.DB
		binding gin.HandlerFunc
	)
	switch cfg.Storage.Backend {
	case config.BackendDatabase:
		db, err = database.Connect(cfg.Database, logging.NewGormLogger(logging.Logger, slowQueryThreshold))
		if err != nil {
			logging.Logger.Fatalf("Failed to connect to database: %v", err)
		}
		logging.Logger.WithField("driver", cfg.Database.Driver).Info("Database storage initialized")
		binding = middleware.SharedStore(storage.NewDatabaseStorage(db))
	default:
		registry := session.NewRegistry()
		go pruneSessions(ctx, registry, time.Duration(cfg.Session.MaxAge)*time.Second)
		logging.Logger.Info("Using session storage")
		binding = middleware.SessionBinding(registry, cfg.Session)
	}

	// Set up Gin router (without default logger since we'll use our own)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())

	securityConfig := middleware.NewSecurityConfigFromEnv()
	if err := router.SetTrustedProxies(securityConfig.TrustedProxies); err != nil {
		logging.Logger.Fatalf("Invalid trusted proxies: %v", err)
	}
	router.Use(middleware.RequestSizeLimit(securityConfig.MaxRequestBodySize))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorSanitizer())

	rateLimitConfig := middleware.NewRateLimitConfigFromEnv()
	router.Use(middleware.GlobalRateLimiter(rateLimitConfig))

	handlers.RegisterHealthRoutes(router, handlers.NewHealthHandler(db))

	app := router.Group("")
	app.Use(binding)
	handlers.RegisterRoutes(app,
		middleware.ReadRateLimiter(rateLimitConfig),
		middleware.WriteRateLimiter(rateLimitConfig),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logging.Logger.Infof("Starting server on port %s...", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.WithError(err).Error("Server shutdown error")
	}

	if db != nil {
		if err := database.Close(db); err != nil {
			logging.Logger.WithError(err).Error("Failed to close database")
		}
	}
	logging.Logger.Info("Server stopped")
}

// pruneSessions drops sessions idle for longer than maxIdle until ctx is done
func pruneSessions(ctx context.Context, registry *session.Registry, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	interval := maxIdle / 4
	if interval > time.Hour {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Prune(maxIdle); n > 0 {
				logging.Logger.WithField("pruned", n).Debug("Pruned idle sessions")
			}
		}
	}
}
