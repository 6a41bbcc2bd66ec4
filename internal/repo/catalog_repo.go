package repo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"coffee-orders/internal/model"
)

const catalogCacheKey = "catalog:items"

// CatalogStore restricts catalog repo methods.
type CatalogStore interface {
	CreateItem(ctx context.Context, item *model.CatalogItem) error
	ListItems(ctx context.Context) ([]model.CatalogItem, error)
	Count(ctx context.Context) (int64, error)
}

// CatalogRepository reads through a redis cache in front of the table.
type CatalogRepository struct {
	db  *gorm.DB
	rdb *redis.Client
	log *zap.SugaredLogger
}

func NewCatalogRepository(db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *CatalogRepository {
	return &CatalogRepository{db: db, rdb: rdb, log: log}
}

// CreateItem inserts the item and invalidates the cached list.
func (r *CatalogRepository) CreateItem(ctx context.Context, item *model.CatalogItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	if r.rdb != nil {
		if err := r.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
			r.log.Warnf("invalidate catalog cache: %v", err)
		}
	}
	return nil
}

// ListItems serves from cache when possible, falling back to the table.
func (r *CatalogRepository) ListItems(ctx context.Context) ([]model.CatalogItem, error) {
	if r.rdb != nil {
		if raw, err := r.rdb.Get(ctx, catalogCacheKey).Result(); err == nil {
			var items []model.CatalogItem
			if err := json.Unmarshal([]byte(raw), &items); err == nil {
				return items, nil
			}
		}
	}
	var items []model.CatalogItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	if r.rdb != nil {
		if raw, err := json.Marshal(items); err == nil {
			if err := r.rdb.Set(ctx, catalogCacheKey, string(raw), 5*time.Minute).Err(); err != nil {
				r.log.Warnf("cache catalog items: %v", err)
			}
		}
	}
	return items, nil
}

// Count returns the number of catalog rows.
func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CatalogItem{}).Count(&n).Error
	return n, err
}
