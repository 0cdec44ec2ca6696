package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rdxa101ou/bookvibe/internal/config"
	"github.com/rdxa101ou/bookvibe/internal/database"
	"github.com/rdxa101ou/bookvibe/internal/handler"
	"github.com/rdxa101ou/bookvibe/internal/middleware"
	"github.com/rdxa101ou/bookvibe/internal/repository"
	"github.com/rdxa101ou/bookvibe/internal/service"
	"github.com/rdxa101ou/bookvibe/internal/session"
	"github.com/rdxa101ou/bookvibe/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	sessions, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword, cfg.SessionTTL)
	if err != nil {
		logger.Error("session registry connection failed", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	broker := session.NewBroker()

	// Audit feed: every sign-in/sign-out lands in the log
	go func() {
		events, unsubscribe := broker.Subscribe()
		defer unsubscribe()
		for ev := range events {
			logger.Info("session event", "type", ev.Type, "user_id", ev.UserID, "email", ev.Email)
		}
	}()

	covers, err := storage.NewCoverBucket(cfg.CoverDir, cfg.CoverBaseURL, cfg.CoverMaxBytes)
	if err != nil {
		logger.Error("cover bucket init failed", "error", err)
		os.Exit(1)
	}

	bookRepo := repository.NewBookRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	userRepo := repository.NewUserRepository(db)

	bookSvc := service.NewBookService(bookRepo)
	progressSvc := service.NewProgressService(progressRepo, bookRepo)
	authSvc := service.NewAuthService(userRepo, sessions, broker, cfg.SessionSecret, cfg.SessionTTL)

	if cfg.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			cancel()
			logger.Error("admin bootstrap failed", "error", err)
			os.Exit(1)
		}
		cancel()
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded cover objects are served straight from the bucket directory
	r.Static("/covers", covers.Dir())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.NewBookHandler(bookSvc, logger).RegisterRoutes(r)
	handler.NewAuthHandler(authSvc, broker, cfg.SessionTTL, cfg.IsProduction()).RegisterRoutes(r)

	themeHandler := handler.NewThemeHandler(authSvc)
	r.GET("/theme", themeHandler.Get)
	r.PUT("/theme", middleware.SessionGuard(authSvc), themeHandler.Set)

	admin := r.Group("/admin", middleware.SessionGuard(authSvc), middleware.RequireAdmin())
	handler.NewAdminHandler(bookSvc, covers, logger).RegisterRoutes(admin)

	progress := r.Group("/progress", middleware.SessionGuard(authSvc))
	handler.NewProgressHandler(progressSvc).RegisterRoutes(progress)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("bookvibe server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
