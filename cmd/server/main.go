package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"feedback-dashboard/internal/app"
	"feedback-dashboard/internal/config"
	"feedback-dashboard/internal/handlers"
	"feedback-dashboard/internal/logger"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)

	if err := run(cfg); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
	log.Info("👋 Server stopped")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.WithError(err).Warn("⚠️  Error closing clients")
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(a.Service, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 Feedback dashboard API starting on port %s (store: %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.TrendsRefreshInterval > 0 {
		g.Go(func() error {
			return a.Service.RunTrendRefresher(gctx, cfg.TrendsRefreshInterval)
		})
	}

	return g.Wait()
}
