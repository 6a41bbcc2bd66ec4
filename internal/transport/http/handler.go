package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"coffee-orders/internal/notify"
	"coffee-orders/internal/service"
)

// HealthHandler is the static liveness probe every service exposes.
func HealthHandler(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	}
}

func RegisterOrderHandlers(r *gin.Engine, svc *service.OrderService) {
	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(svc))
}

type createOrderReq struct {
	ItemName string          `json:"itemName"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

func createOrderHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := svc.CreateOrder(c.Request.Context(), req.ItemName, req.Quantity, req.Total)
		if err != nil {
			if errors.Is(err, service.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Location", fmt.Sprintf("/orders/%d", order.ID))
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func RegisterCatalogHandlers(r *gin.Engine, svc *service.CatalogService) {
	r.GET("/catalog/items", listItemsHandler(svc))
	r.POST("/catalog/items", createItemHandler(svc))
}

type createItemReq struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func createItemHandler(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createItemReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		item, err := svc.CreateItem(c.Request.Context(), req.Name, req.Price)
		if err != nil {
			if errors.Is(err, service.ErrInvalidItem) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Location", fmt.Sprintf("/catalog/items/%d", item.ID))
		c.JSON(http.StatusCreated, item)
	}
}

func listItemsHandler(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListItems(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// RegisterEventHandlers serves the recent-activity feed. The handler
// only ever sees buffer snapshots, so a down broker degrades to an
// unchanging feed rather than an error.
func RegisterEventHandlers(r *gin.Engine, buf *notify.Buffer) {
	r.GET("/events", func(c *gin.Context) {
		c.JSON(http.StatusOK, buf.Snapshot())
	})
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Notification Service running...")
	})
}
