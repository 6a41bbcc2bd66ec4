package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coffee-orders/internal/notify"
	"coffee-orders/internal/service"
)

func newEngine(log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(LoggingMiddleware(log))
	r.Use(cors.Default())
	return r
}

// NewOrdersRouter serves the order-ingestion API.
func NewOrdersRouter(svc *service.OrderService, log *zap.SugaredLogger) *gin.Engine {
	r := newEngine(log)
	r.GET("/health", HealthHandler("orders"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterOrderHandlers(r, svc)
	return r
}

// NewCatalogRouter serves the menu API.
func NewCatalogRouter(svc *service.CatalogService, log *zap.SugaredLogger) *gin.Engine {
	r := newEngine(log)
	r.GET("/health", HealthHandler("catalog"))
	RegisterCatalogHandlers(r, svc)
	return r
}

// NewEventsRouter serves the notification feed.
func NewEventsRouter(buf *notify.Buffer, log *zap.SugaredLogger) *gin.Engine {
	r := newEngine(log)
	r.GET("/health", HealthHandler("notifications"))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterEventHandlers(r, buf)
	return r
}
