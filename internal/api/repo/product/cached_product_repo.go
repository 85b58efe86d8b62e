package product_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"MockECommerce/internal/api/domain/order"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyProduct = "product:%s"

type cachedProduct struct {
	ID       uuid.UUID `json:"id"`
	SellerID uuid.UUID `json:"sellerId"`
	Name     string    `json:"name"`
}

// CachedProductRepo is a read-through Redis cache in front of another
// ProductRepo. Products are read-only for this service, so entries only
// expire by TTL. Redis failures fall back to the wrapped repo.
type CachedProductRepo struct {
	next order.ProductRepo
	rdb  redis.Cmdable
	ttl  time.Duration
}

func NewCachedProductRepo(next order.ProductRepo, rdb redis.Cmdable, ttl time.Duration) *CachedProductRepo {
	return &CachedProductRepo{next: next, rdb: rdb, ttl: ttl}
}

func (r *CachedProductRepo) GetProductByID(ctx context.Context, id uuid.UUID) (*order.Product, error) {
	key := fmt.Sprintf(keyProduct, id)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedProduct
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &order.Product{ID: cached.ID, SellerID: cached.SellerID, Name: cached.Name}, nil
		}
		slog.WarnContext(ctx, "Dropping undecodable product cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "Product cache read failed", "key", key, slog.Any("error", err))
	}

	product, err := r.next.GetProductByID(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	value, err := json.Marshal(cachedProduct{ID: product.ID, SellerID: product.SellerID, Name: product.Name})
	if err != nil {
		return product, nil
	}
	if err := r.rdb.Set(ctx, key, value, r.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Product cache write failed", "key", key, slog.Any("error", err))
	}
	return product, nil
}
