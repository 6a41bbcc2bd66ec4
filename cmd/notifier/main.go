package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coffee-orders/internal/bus"
	"coffee-orders/internal/config"
	"coffee-orders/internal/logger"
	"coffee-orders/internal/notify"
	httptransport "coffee-orders/internal/transport/http"
)

func main() {
	// 1. load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	// 2. init logger
	log, err := logger.NewLogger("notifications")
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	// 3. recency buffer + bus subscriber
	buf := notify.NewBuffer(cfg.Notifier.BufferSize)
	source := bus.NewKafkaSource(cfg.Kafka)
	sub := notify.NewSubscriber(source, buf, log, notify.Options{
		MaxAttempts:    cfg.Notifier.MaxAttempts,
		Backoff:        time.Duration(cfg.Notifier.BackoffSeconds) * time.Second,
		ResetOnSuccess: cfg.Notifier.ResetOnSuccess,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subDone := make(chan struct{})
	go func() {
		defer close(subDone)
		sub.Run(ctx)
	}()

	// 4. gin router + server with graceful shutdown
	router := httptransport.NewEventsRouter(buf, log)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Notifier.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("notification service listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}

	// subscriber stops via the cancelled signal context and releases
	// its bus connection on the way out
	select {
	case <-subDone:
	case <-time.After(10 * time.Second):
		log.Warn("subscriber did not stop in time")
	}
	log.Info("shutdown complete")
}
