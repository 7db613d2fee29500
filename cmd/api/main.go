package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sheets-otp/internal/config"
	sheetsinfra "github.com/sheets-otp/internal/infrastructure/sheets"
	"github.com/sheets-otp/internal/pkg/logger"
	transporthttp "github.com/sheets-otp/internal/transport/http"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	l := logger.WithModule("main")

	if envErr != nil {
		l.Info("No .env file found, reading from environment")
	}
	if err := cfg.Validate(); err != nil {
		l.Fatal("invalid configuration", zap.Error(err))
	}

	sheetsSvc, err := sheetsinfra.NewService(context.Background(), cfg)
	if err != nil {
		l.Fatal("sheets client not available", zap.Error(err))
	}

	deps := &transporthttp.Deps{
		CellReader: sheetsinfra.NewReader(sheetsSvc),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info("Server starting", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Error("forced shutdown", zap.Error(err))
		return
	}
	l.Info("Server stopped")
}
