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

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/api"
	"pos-kiosk-demo/internal/handoff"
	"pos-kiosk-demo/internal/notification"
	"pos-kiosk-demo/internal/store"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	logger := log.New(os.Stdout, "kioskd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s", configPath)

	sessions, err := store.Open(&cfg.Store)
	if err != nil {
		logger.Fatalf("failed to open %s session store: %v", cfg.Store.Driver, err)
	}
	defer sessions.Close()
	logger.Printf("%s session store ready", cfg.Store.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := notification.NewRegistry(cfg.Store.SessionTTL())

	// Push stays off until VAPID keys are configured.
	var (
		webpushOptions *webpush.Options
		notifier       handoff.Notifier
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, registry, webpushOptions)
		pool.Start(ctx)
		notifier = pool
		logger.Printf("web push enabled with %d worker(s)", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; session events will not be pushed")
	}

	svc := handoff.NewService(sessions, notifier)
	router := api.NewRouter(cfg, api.NewHandler(svc, registry, webpushOptions, cfg))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d (QR links point at %s)", cfg.Server.Port, cfg.Server.PublicBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
