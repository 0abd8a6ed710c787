package cache

import (
	"context"
	"time"
)

// Cache is a read-through cache for catalog data. Cart state and totals are
// never cached; totals are re-derived on every read.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix     = "product"
	ProductListKeyPrefix = "products"
)
