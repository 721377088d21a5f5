package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/model"
)

// CartRedis persists carts as JSON blobs in Redis, one key per session.
type CartRedis struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

var _ cart.CartStore = (*CartRedis)(nil)

// NewCartRedis connects to Redis using the same environment contract as the
// rest of the deployment: REDIS_SENTINEL_ADDRS selects sentinel failover
// mode, otherwise REDIS_ADDR (default redis-cart:6379) selects a single
// node. The initial ping is retried with capped exponential backoff so the
// storefront survives Redis coming up after it.
func NewCartRedis(log logrus.FieldLogger) (*CartRedis, error) {
	var rdb *redis.Client

	dbIndex := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		fmt.Sscanf(dbStr, "%d", &dbIndex)
	}

	if sentinelAddrs := os.Getenv("REDIS_SENTINEL_ADDRS"); sentinelAddrs != "" {
		masterName := os.Getenv("REDIS_MASTER_NAME")
		if masterName == "" {
			masterName = "mymaster"
		}
		log.WithFields(logrus.Fields{"master": masterName, "db": dbIndex}).
			Info("initializing redis in sentinel mode")
		rdb = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    masterName,
			SentinelAddrs: strings.Split(sentinelAddrs, ","),
			DB:            dbIndex,
		})
	} else {
		redisAddr := os.Getenv("REDIS_ADDR")
		if redisAddr == "" {
			redisAddr = "redis-cart:6379"
		}
		log.WithFields(logrus.Fields{"addr": redisAddr, "db": dbIndex}).
			Info("initializing redis in single node mode")
		rdb = redis.NewClient(&redis.Options{
			Addr: redisAddr,
			DB:   dbIndex,
		})
	}

	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()

		if err == nil {
			log.Info("connected to redis")
			break
		}
		if i == maxRetries-1 {
			return nil, errors.Wrapf(err, "failed to connect to redis after %d retries", maxRetries)
		}

		backoff := time.Duration(1<<i) * time.Second
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		log.Warnf("redis not ready, retry in %v... (%d/%d)", backoff, i+1, maxRetries)
		time.Sleep(backoff)
	}

	return &CartRedis{rdb: rdb, log: log}, nil
}

func slotKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", slotPrefix, sessionID)
}

// Load reads the persisted cart for sessionID. A missing key, a read error
// or a corrupt payload all yield the canonical empty cart; persistence
// failures never propagate to the mutation path.
func (r *CartRedis) Load(ctx context.Context, sessionID string) model.Cart {
	raw, err := r.rdb.Get(ctx, slotKey(sessionID)).Bytes()
	if err == redis.Nil {
		return model.EmptyCart()
	}
	if err != nil {
		r.log.WithField("error", err).Warn("failed to load cart, starting empty")
		return model.EmptyCart()
	}
	return decodeCart(raw, r.log)
}

// Save stores the cart verbatim under the session's slot. Best effort: a
// failed write is logged and swallowed, the in-memory cart stays
// authoritative for the session.
func (r *CartRedis) Save(ctx context.Context, sessionID string, c model.Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		r.log.WithField("error", err).Warn("failed to serialize cart")
		return
	}
	if err := r.rdb.Set(ctx, slotKey(sessionID), raw, 0).Err(); err != nil {
		r.log.WithField("error", err).Warn("failed to save cart")
	}
}

// Client exposes the underlying connection so other components (catalog
// cache, rate limiter) can share it.
func (r *CartRedis) Client() *redis.Client {
	return r.rdb
}
