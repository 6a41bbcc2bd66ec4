package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coffee-orders/internal/logger"
	"coffee-orders/internal/model"
	"coffee-orders/internal/repo"
)

// fakePublisher records publishes and can be told to fail.
type fakePublisher struct {
	mu       sync.Mutex
	err      error
	keys     []string
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func newTestOrderService(t *testing.T, pub *fakePublisher) (*OrderService, context.Context) {
	// SQLite in-memory DB, unique per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.Order{}))

	log, _ := logger.NewLogger("test")
	svc := NewOrderService(repo.NewOrderRepository(db), pub, log)
	return svc, context.Background()
}

func TestCreateOrder_AssignsStrictlyIncreasingIDs(t *testing.T) {
	pub := &fakePublisher{}
	svc, ctx := newTestOrderService(t, pub)

	var last uint64
	for i := 1; i <= 3; i++ {
		o, err := svc.CreateOrder(ctx, "Espresso", i, decimal.NewFromInt(int64(3*i)))
		assert.NoError(t, err)
		assert.Greater(t, o.ID, last)
		last = o.ID
	}

	orders, err := svc.ListOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	// newest first
	assert.Equal(t, uint64(3), orders[0].ID)
	assert.Equal(t, uint64(1), orders[2].ID)
}

func TestCreateOrder_SucceedsWhenBusIsDown(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	svc, ctx := newTestOrderService(t, pub)

	o, err := svc.CreateOrder(ctx, "Latte", 2, decimal.RequireFromString("9.00"))
	assert.NoError(t, err, "publish failure must not fail the call")
	assert.Equal(t, uint64(1), o.ID)

	orders, err := svc.ListOrders(ctx)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "Latte", orders[0].ItemName)
}

func TestCreateOrder_PublishesSerializedOrder(t *testing.T) {
	pub := &fakePublisher{}
	svc, ctx := newTestOrderService(t, pub)

	o, err := svc.CreateOrder(ctx, "Latte", 2, decimal.RequireFromString("9.00"))
	assert.NoError(t, err)

	assert.Equal(t, []string{"1"}, pub.keys, "routing key is the order id")
	assert.Len(t, pub.payloads, 1)

	var published model.Order
	assert.NoError(t, json.Unmarshal(pub.payloads[0], &published))
	assert.Equal(t, o.ID, published.ID)
	assert.Equal(t, "Latte", published.ItemName)
	assert.Equal(t, 2, published.Quantity)
	assert.True(t, published.Total.Equal(decimal.RequireFromString("9.00")))
	assert.False(t, published.CreatedUtc.IsZero())
}

func TestCreateOrder_RejectsInvalidInput(t *testing.T) {
	pub := &fakePublisher{}
	svc, ctx := newTestOrderService(t, pub)

	cases := []struct {
		name     string
		itemName string
		quantity int
		total    decimal.Decimal
	}{
		{"empty item name", "", 1, decimal.NewFromInt(3)},
		{"zero quantity", "Espresso", 0, decimal.NewFromInt(3)},
		{"negative quantity", "Espresso", -1, decimal.NewFromInt(3)},
		{"negative total", "Espresso", 1, decimal.NewFromInt(-3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tc.itemName, tc.quantity, tc.total)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	orders, err := svc.ListOrders(ctx)
	assert.NoError(t, err)
	assert.Empty(t, orders, "rejected requests must not persist anything")
	assert.Empty(t, pub.keys, "rejected requests must not publish")
}

func TestCreateOrder_ZeroTotalIsAccepted(t *testing.T) {
	pub := &fakePublisher{}
	svc, ctx := newTestOrderService(t, pub)

	o, err := svc.CreateOrder(ctx, "Water", 1, decimal.Zero)
	assert.NoError(t, err)
	assert.True(t, o.Total.IsZero())
}
