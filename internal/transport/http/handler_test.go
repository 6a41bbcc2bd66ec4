package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coffee-orders/internal/logger"
	"coffee-orders/internal/model"
	"coffee-orders/internal/notify"
	"coffee-orders/internal/repo"
	"coffee-orders/internal/service"
)

type noopPublisher struct{ err error }

func (p *noopPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	return p.err
}
func (p *noopPublisher) Close() error { return nil }

func newTestOrdersRouter(t *testing.T, pub *noopPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.Order{}))

	log, _ := logger.NewLogger("test")
	svc := service.NewOrderService(repo.NewOrderRepository(db), pub, log)
	return NewOrdersRouter(svc, log)
}

func TestPostOrders_CreatesAndReturns201(t *testing.T) {
	router := newTestOrdersRouter(t, &noopPublisher{})

	body := `{"itemName":"Latte","quantity":2,"total":9.00}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/orders/1", w.Header().Get("Location"))

	var got model.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint64(1), got.ID)
	assert.Equal(t, "Latte", got.ItemName)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("9.00")))
	assert.False(t, got.CreatedUtc.IsZero())
}

func TestPostOrders_BrokerDownStillCreates(t *testing.T) {
	router := newTestOrdersRouter(t, &noopPublisher{err: errors.New("broker unreachable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"itemName":"Latte","quantity":2,"total":9.00}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// order is durable despite the failed publish
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var orders []model.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestPostOrders_InvalidInputIs400(t *testing.T) {
	router := newTestOrdersRouter(t, &noopPublisher{})

	for _, body := range []string{
		`{"itemName":"","quantity":2,"total":9.00}`,
		`{"itemName":"Latte","quantity":0,"total":9.00}`,
		`{"itemName":"Latte","quantity":2,"total":-1}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestGetOrders_NewestFirstAndEmptyIsArray(t *testing.T) {
	router := newTestOrdersRouter(t, &noopPublisher{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	for _, item := range []string{"Espresso", "Latte"} {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/orders",
			strings.NewReader(fmt.Sprintf(`{"itemName":%q,"quantity":1,"total":3}`, item)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	var orders []model.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
	assert.Equal(t, "Latte", orders[0].ItemName)
	assert.Equal(t, "Espresso", orders[1].ItemName)
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := logger.NewLogger("test")
	router := NewEventsRouter(notify.NewBuffer(20), log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"notifications"}`, w.Body.String())
}

func TestGetEvents_ServesBufferSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log, _ := logger.NewLogger("test")
	buf := notify.NewBuffer(20)
	router := NewEventsRouter(buf, log)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	buf.Append(`OrderEvent: {"id":1}`)
	buf.Append(`OrderEvent: {"id":2}`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	var events []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	assert.Equal(t, []string{`OrderEvent: {"id":1}`, `OrderEvent: {"id":2}`}, events)
}
