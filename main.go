package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/app"
	"github.com/canken881226/amazon-Listing-Tool/config"
	"github.com/canken881226/amazon-Listing-Tool/db"
	"github.com/canken881226/amazon-Listing-Tool/logging"
)

func main() {
	// Load .env in development. Values in .env override the system environment.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.Init(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, err := app.Initialize(ctx, cfg)
	if err != nil {
		zap.S().Fatalf("❌ %v", err)
	}
	defer db.CloseDB()

	// Listen on 0.0.0.0 to accept connections from all interfaces (Docker)
	addr := "0.0.0.0:" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("❌ Shutdown: %v", err)
		}
	}()

	zap.S().Infof("🚀 Server starting on %s", addr)
	zap.S().Infof("Fill endpoint: POST http://localhost:%s/admin/listings/fill", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zap.S().Fatalf("❌ Server failed to start: %v", err)
	}
}
