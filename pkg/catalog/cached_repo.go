package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/jaan-distributors/storefront/pkg/model"
)

const cacheTTL = 5 * time.Minute

// cachedRepo is a cache-aside decorator over a ProductRepository. Single
// product and category-list reads are the hot path; they go through Redis
// with singleflight collapsing concurrent misses, and a circuit breaker
// taking Redis out of the path entirely when it misbehaves. Listings with
// filters are served straight from the backing store: the key space would
// explode and the hit rate would be noise.
type cachedRepo struct {
	next ProductRepository
	rdb  *redis.Client
	sf   singleflight.Group
	cb   *gobreaker.CircuitBreaker
	log  logrus.FieldLogger
}

var _ ProductRepository = (*cachedRepo)(nil)

func NewCachedRepo(next ProductRepository, rdb *redis.Client, log logrus.FieldLogger) ProductRepository {
	st := gobreaker.Settings{
		Name:        "CatalogCache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}
	return &cachedRepo{
		next: next,
		rdb:  rdb,
		cb:   gobreaker.NewCircuitBreaker(st),
		log:  log,
	}
}

// cached runs the load function through the cache: Redis hit wins, a miss
// falls through to load and backfills. Cache failures degrade to the
// backing store, never to the caller.
func cached[T any](c *cachedRepo, ctx context.Context, key string, load func() (T, error)) (T, error) {
	var zero T

	hit, err := c.cb.Execute(func() (interface{}, error) {
		return c.rdb.Get(ctx, key).Bytes()
	})
	if err == nil {
		var v T
		if jsonErr := json.Unmarshal(hit.([]byte), &v); jsonErr == nil {
			return v, nil
		}
		c.log.WithField("key", key).Warn("corrupt cache entry, reloading")
	} else if err != redis.Nil && err != gobreaker.ErrOpenState && err != gobreaker.ErrTooManyRequests {
		c.log.WithField("error", err).Debug("cache read failed")
	}

	res, err, _ := c.sf.Do(key, func() (interface{}, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}
		if raw, jsonErr := json.Marshal(v); jsonErr == nil {
			_, _ = c.cb.Execute(func() (interface{}, error) {
				return nil, c.rdb.Set(ctx, key, raw, cacheTTL).Err()
			})
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}

func (c *cachedRepo) ListProducts(ctx context.Context, f Filters) (model.PaginatedResponse[model.Product], error) {
	return c.next.ListProducts(ctx, f)
}

func (c *cachedRepo) GetProductByID(ctx context.Context, id int64) (model.Product, error) {
	return cached(c, ctx, fmt.Sprintf("catalog:product:id:%d", id), func() (model.Product, error) {
		return c.next.GetProductByID(ctx, id)
	})
}

func (c *cachedRepo) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	return cached(c, ctx, "catalog:product:slug:"+slug, func() (model.Product, error) {
		return c.next.GetProductBySlug(ctx, slug)
	})
}

func (c *cachedRepo) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	return cached(c, ctx, "catalog:products:featured", func() ([]model.Product, error) {
		return c.next.FeaturedProducts(ctx)
	})
}

func (c *cachedRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	return cached(c, ctx, "catalog:categories", func() ([]model.Category, error) {
		return c.next.ListCategories(ctx)
	})
}

func (c *cachedRepo) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	return cached(c, ctx, "catalog:category:slug:"+slug, func() (model.Category, error) {
		return c.next.GetCategoryBySlug(ctx, slug)
	})
}
