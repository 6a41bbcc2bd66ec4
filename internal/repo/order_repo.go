package repo

import (
	"context"

	"gorm.io/gorm"

	"coffee-orders/internal/model"
)

// OrderStore restricts repo methods so services can be tested with fakes.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	ListNewestFirst(ctx context.Context) ([]model.Order, error)
}

// OrderRepository implements OrderStore on gorm.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order; the store assigns the id.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// ListNewestFirst returns all orders, most recently created first.
func (r *OrderRepository) ListNewestFirst(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Order("id desc").Find(&orders).Error
	return orders, err
}
