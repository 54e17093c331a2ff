package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/classconnect/backoffice/application/usecase"
	"github.com/classconnect/backoffice/infrastructure/config"
	"github.com/classconnect/backoffice/infrastructure/external/authdir"
	"github.com/classconnect/backoffice/infrastructure/http/handler"
	"github.com/classconnect/backoffice/infrastructure/http/middleware"
	"github.com/classconnect/backoffice/infrastructure/persistence/postgres"
	"github.com/classconnect/backoffice/infrastructure/service/logger"
	"github.com/classconnect/backoffice/infrastructure/service/password"
	"github.com/classconnect/backoffice/infrastructure/service/ratelimit"
	"github.com/classconnect/backoffice/infrastructure/service/token"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "backoffice",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Fail fast when the database is unreachable.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		LoginAttempts: cfg.RateLimitLoginAttempts,
		LoginWindow:   cfg.RateLimitLoginWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limiting, continuing without it", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		rateLimitService, _ = ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{Enabled: false}, structuredLogger)
	}

	adminRepo := postgres.NewAdminRepository(db)
	auditRepo := postgres.NewAuditLogRepository(db)

	tokenService, err := token.NewJWTService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)
	authDirectory := authdir.NewClient(cfg.AuthServiceURL, cfg.AuthTimeout, structuredLogger)

	adminUseCase := usecase.NewAdminUseCase(adminRepo, passwordService, structuredLogger)
	identityUseCase := usecase.NewIdentityUseCase(authDirectory, auditRepo, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(
		rateLimitService,
		structuredLogger,
		cfg.RateLimitLoginAttempts,
		cfg.RateLimitLoginWindow,
		cfg.RateLimitBlockDuration,
	)

	adminHandler := handler.NewAdminHandler(adminUseCase, tokenService, authMiddleware)
	identityHandler := handler.NewIdentityHandler(identityUseCase, authMiddleware)

	router := mux.NewRouter()
	adminHandler.RegisterRoutes(router, rateLimitMiddleware.RateLimit)
	identityHandler.RegisterRoutes(router)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)

	var httpHandler http.Handler = middleware.CorrelationIDMiddleware(router)
	if cfg.CORSEnabled {
		httpHandler = middleware.CORSMiddleware(httpHandler, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
