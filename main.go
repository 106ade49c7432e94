package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/chxlky/trello-gchat-notify/api"
	"github.com/chxlky/trello-gchat-notify/database"
	"github.com/chxlky/trello-gchat-notify/integrations"
	"github.com/chxlky/trello-gchat-notify/internal/auth"
	"github.com/chxlky/trello-gchat-notify/internal/config"
	"github.com/chxlky/trello-gchat-notify/internal/logger"
	"github.com/chxlky/trello-gchat-notify/internal/notify"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	gin.SetMode(cfg.Server.Mode)

	db, err := database.Init(cfg.Database.Path)
	if err != nil {
		zap.L().Fatal("Failed to open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}

	users := database.NewUserStore(db)
	destinations := database.NewDestinationStore(db)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			zap.L().Fatal("Failed to hash admin password", zap.Error(err))
		}
		if err := database.EnsureAdmin(context.Background(), users, cfg.Admin.Name, cfg.Admin.Email, hash); err != nil {
			zap.L().Fatal("Failed to seed admin account", zap.Error(err))
		}
	}

	// Validate has already checked the timezone.
	loc, _ := cfg.Notify.Location()

	trelloClient := integrations.NewTrelloClient(cfg.Trello.APIKey, cfg.Trello.APIToken, cfg.Trello.Timeout).
		WithBaseURL(cfg.Trello.BaseURL)
	chatClient := integrations.NewChatClient(cfg.GChat.Timeout)
	composer := notify.NewComposer(notify.WithLocation(loc), notify.WithDateLayout(cfg.Notify.DateLayout))

	apiHandler := &api.Handler{
		Users:          users,
		Destinations:   destinations,
		Board:          trelloClient,
		Sender:         notify.NewDispatcher(destinations, trelloClient, chatClient, composer),
		Tokens:         auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		DefaultBoardID: cfg.Trello.BoardID,
	}

	router := api.NewRouter(apiHandler, api.RouterOptions{
		Logger:         log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimiter:    api.NewIPRateLimiter(cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("mode", cfg.Server.Mode))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}

		if err := database.Close(db); err != nil {
			zap.L().Error("Error closing database", zap.Error(err))
		} else {
			zap.L().Info("Database connection closed.")
		}
		close(done)
	}

	go func() {
		sig := <-sigCh
		once.Do(func() {
			cleanup(sig.String())
		})

		// a second signal skips the graceful path
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	<-done
	zap.L().Info("Exiting...")
}
