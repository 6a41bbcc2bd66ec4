package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coffee-orders/internal/config"
	"coffee-orders/internal/logger"
	"coffee-orders/internal/model"
	"coffee-orders/internal/repo"
	"coffee-orders/internal/service"
	httptransport "coffee-orders/internal/transport/http"
)

func main() {
	// 1. load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}

	// 2. init logger
	log, err := logger.NewLogger("catalog")
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	// 3. postgres
	gdb, err := gorm.Open(postgres.Open(cfg.Postgres.CatalogDSN), &gorm.Config{PrepareStmt: true})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gdb.AutoMigrate(&model.CatalogItem{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// 4. redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis ping: %v", err)
	}

	// 5. repo & service, seed default menu
	store := repo.NewCatalogRepository(gdb, rdb, log)
	svc := service.NewCatalogService(store, log)
	if err := svc.Seed(context.Background()); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	// 6. gin router
	router := httptransport.NewCatalogRouter(svc, log)

	// 7. serve
	addr := fmt.Sprintf(":%d", cfg.Catalog.Port)
	log.Infof("catalog service listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
