package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	handler "github.com/musetix/polls/internal/adapters/handler/http"
	redisrepo "github.com/musetix/polls/internal/adapters/repository/redis"
	"github.com/musetix/polls/internal/config"
	"github.com/musetix/polls/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	client, err := redisrepo.NewClient(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis configuration", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := client.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	cancelPing()

	repo := redisrepo.NewPollRepository(client)
	service := services.NewPollService(repo)

	pollHandler := handler.NewPollHandler(service, logger)
	healthHandler := handler.NewHealthHandler(repo)
	router := handler.NewHandler(pollHandler, healthHandler)

	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}
