package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coffee-orders/internal/bus"
	"coffee-orders/internal/metrics"
	"coffee-orders/internal/model"
	"coffee-orders/internal/repo"
)

// ErrValidation wraps all order input errors so the HTTP layer can map
// them to a client error without inspecting messages.
var ErrValidation = errors.New("invalid order")

// OrderService persists orders and emits OrderCreated events.
type OrderService struct {
	store repo.OrderStore
	pub   bus.Publisher
	log   *zap.SugaredLogger
}

func NewOrderService(store repo.OrderStore, pub bus.Publisher, log *zap.SugaredLogger) *OrderService {
	return &OrderService{store: store, pub: pub, log: log}
}

// CreateOrder persists the order synchronously, then publishes the
// event best-effort. A publish failure never fails the call; the order
// is durable by then and the caller gets it back either way.
func (s *OrderService) CreateOrder(ctx context.Context, itemName string, quantity int, total decimal.Decimal) (*model.Order, error) {
	if itemName == "" {
		return nil, fmt.Errorf("%w: itemName must not be empty", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total must not be negative", ErrValidation)
	}

	o := &model.Order{
		ItemName:   itemName,
		Quantity:   quantity,
		Total:      total,
		CreatedUtc: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	metrics.OrdersCreated.Inc()

	s.publishCreated(ctx, o)
	return o, nil
}

// publishCreated makes at most one publish attempt. The outcome is
// logged and counted, never propagated.
func (s *OrderService) publishCreated(ctx context.Context, o *model.Order) {
	payload, err := json.Marshal(o)
	if err != nil {
		s.log.Errorf("marshal order %d event: %v", o.ID, err)
		return
	}
	if err := s.pub.Publish(ctx, strconv.FormatUint(o.ID, 10), payload); err != nil {
		metrics.PublishFailures.Inc()
		s.log.Warnf("order %d saved; event publish failed: %v", o.ID, err)
		return
	}
	metrics.EventsPublished.Inc()
	s.log.Infof("published OrderCreated for order %d", o.ID)
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.store.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}
