package main

import (
	"fmt"
	"net/http"

	"coffee-orders/internal/auth"
	"coffee-orders/internal/config"
	"coffee-orders/internal/gateway"
	"coffee-orders/internal/logger"
)

func main() {
	// 1. load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	// 2. init logger
	log, err := logger.NewLogger("gateway")
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	// 3. token authority + router
	authority := auth.NewAuthority(cfg.Auth)
	router, err := gateway.NewRouter(cfg.Gateway, cfg.RateLimit, authority, log)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	// 4. serve
	addr := fmt.Sprintf(":%d", cfg.Gateway.Port)
	log.Infof("gateway listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
