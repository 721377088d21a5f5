package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/model"
)

// CartMemory is a map-backed slot for tests and single-process development.
// It stores serialized payloads, not Cart values, so it exercises the same
// encode/decode path as the Redis slot.
type CartMemory struct {
	mu    sync.Mutex
	slots map[string][]byte
	log   logrus.FieldLogger
}

var _ cart.CartStore = (*CartMemory)(nil)

func NewCartMemory(log logrus.FieldLogger) *CartMemory {
	return &CartMemory{
		slots: make(map[string][]byte),
		log:   log,
	}
}

func (m *CartMemory) Load(ctx context.Context, sessionID string) model.Cart {
	m.mu.Lock()
	raw, ok := m.slots[slotKey(sessionID)]
	m.mu.Unlock()
	if !ok {
		return model.EmptyCart()
	}
	return decodeCart(raw, m.log)
}

func (m *CartMemory) Save(ctx context.Context, sessionID string, c model.Cart) {
	raw, err := json.Marshal(c)
	if err != nil {
		m.log.WithField("error", err).Warn("failed to serialize cart")
		return
	}
	m.mu.Lock()
	m.slots[slotKey(sessionID)] = raw
	m.mu.Unlock()
}

// CartNoop is the slot for non-interactive execution contexts where durable
// storage is unavailable: Load yields the empty cart, Save does nothing.
type CartNoop struct{}

var _ cart.CartStore = CartNoop{}

func (CartNoop) Load(context.Context, string) model.Cart  { return model.EmptyCart() }
func (CartNoop) Save(context.Context, string, model.Cart) {}
