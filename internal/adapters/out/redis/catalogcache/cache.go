// Package catalogcache puts a Redis read-through cache in front of the shop
// and product readers. Cache failures never fail a read: the source is
// consulted instead and the failure is logged.
package catalogcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultTTL = 60 * time.Second

type keys struct {
	prefix string
}

func (k keys) shop(id kernel.UUID) string      { return k.prefix + ":shop:" + id.String() }
func (k keys) shopOwner(id kernel.UUID) string { return k.prefix + ":shop-owner:" + id.String() }
func (k keys) product(id kernel.UUID) string   { return k.prefix + ":product:" + id.String() }

type cache struct {
	client *redis.Client
	ttl    time.Duration
	keys   keys
	logger *zap.Logger
}

func newCache(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return cache{client: client, ttl: ttl, keys: keys{prefix: prefix}, logger: logger}
}

// get reports whether key held a decodable value.
func (c cache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("catalog cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c cache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err = c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c cache) del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// ShopCache implements ports.ShopReader.
type ShopCache struct {
	source ports.ShopReader
	cache  cache
}

func NewShopCache(source ports.ShopReader, client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *ShopCache {
	return &ShopCache{source: source, cache: newCache(client, prefix, ttl, logger)}
}

func (s *ShopCache) GetByID(ctx context.Context, id kernel.UUID) (catalog.Shop, error) {
	return s.read(ctx, s.cache.keys.shop(id), func() (catalog.Shop, error) {
		return s.source.GetByID(ctx, id)
	})
}

func (s *ShopCache) GetByOwner(ctx context.Context, ownerID kernel.UUID) (catalog.Shop, error) {
	return s.read(ctx, s.cache.keys.shopOwner(ownerID), func() (catalog.Shop, error) {
		return s.source.GetByOwner(ctx, ownerID)
	})
}

// InvalidateShop evicts both lookups of shop.
func (s *ShopCache) InvalidateShop(ctx context.Context, shop catalog.Shop) error {
	return s.cache.del(ctx, s.cache.keys.shop(shop.ID), s.cache.keys.shopOwner(shop.OwnerID))
}

func (s *ShopCache) read(ctx context.Context, key string, load func() (catalog.Shop, error)) (catalog.Shop, error) {
	var shop catalog.Shop
	if s.cache.get(ctx, key, &shop) {
		return shop, nil
	}

	shop, err := load()
	if err != nil {
		return catalog.Shop{}, err
	}
	s.cache.set(ctx, key, shop)
	return shop, nil
}

// ProductCache implements ports.ProductReader.
type ProductCache struct {
	source ports.ProductReader
	cache  cache
}

func NewProductCache(source ports.ProductReader, client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *ProductCache {
	return &ProductCache{source: source, cache: newCache(client, prefix, ttl, logger)}
}

func (p *ProductCache) GetByID(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	key := p.cache.keys.product(id)

	var product catalog.Product
	if p.cache.get(ctx, key, &product) {
		return product, nil
	}

	product, err := p.source.GetByID(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	p.cache.set(ctx, key, product)
	return product, nil
}

func (p *ProductCache) InvalidateProduct(ctx context.Context, id kernel.UUID) error {
	return p.cache.del(ctx, p.cache.keys.product(id))
}
