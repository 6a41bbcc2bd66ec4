package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coffee-orders/internal/model"
	"coffee-orders/internal/repo"
)

// ErrInvalidItem wraps catalog input errors.
var ErrInvalidItem = errors.New("invalid catalog item")

// CatalogService manages the coffee menu.
type CatalogService struct {
	store repo.CatalogStore
	log   *zap.SugaredLogger
}

func NewCatalogService(store repo.CatalogStore, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// CreateItem adds a menu entry.
func (s *CatalogService) CreateItem(ctx context.Context, name string, price decimal.Decimal) (*model.CatalogItem, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidItem)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidItem)
	}
	item := &model.CatalogItem{Name: name, Price: price}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns the menu.
func (s *CatalogService) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CatalogItem{}
	}
	return items, nil
}

// Seed inserts the default menu when the table is empty.
func (s *CatalogService) Seed(ctx context.Context) error {
	n, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults := []struct {
		name  string
		price string
	}{
		{"Espresso", "3.0"},
		{"Latte", "4.5"},
	}
	for _, d := range defaults {
		item := &model.CatalogItem{Name: d.name, Price: decimal.RequireFromString(d.price)}
		if err := s.store.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	s.log.Infof("seeded %d catalog items", len(defaults))
	return nil
}
