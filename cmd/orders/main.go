package main

import (
	"fmt"
	"net/http"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coffee-orders/internal/bus"
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
	log, err := logger.NewLogger("orders")
	if err != nil {
		panic(fmt.Errorf("init logger: %w", err))
	}
	defer log.Sync()

	// 3. postgres
	gdb, err := gorm.Open(postgres.Open(cfg.Postgres.OrdersDSN), &gorm.Config{PrepareStmt: true})
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if err := gdb.AutoMigrate(&model.Order{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// 4. kafka publisher
	pub := bus.NewKafkaPublisher(cfg.Kafka)
	defer pub.Close()

	// 5. repo & service
	store := repo.NewOrderRepository(gdb)
	svc := service.NewOrderService(store, pub, log)

	// 6. gin router
	router := httptransport.NewOrdersRouter(svc, log)

	// 7. serve
	addr := fmt.Sprintf(":%d", cfg.Orders.Port)
	log.Infof("order service listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
