package cart

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jaan-distributors/storefront/pkg/model"
)

// CartStore is the durable slot a session persists its cart into. Load never
// fails from the caller's point of view: a missing or corrupt payload yields
// the canonical empty cart. Save is best-effort; a failed write is logged by
// the implementation and the in-memory cart stays authoritative.
type CartStore interface {
	Load(ctx context.Context, sessionID string) model.Cart
	Save(ctx context.Context, sessionID string, c model.Cart)
}

// Syncer reconciles a local cart against the order backend's authoritative
// view of stock and pricing. A single exchange is attempted per call; retry
// is a caller concern.
type Syncer interface {
	SyncCart(ctx context.Context, c model.Cart) (model.Cart, error)
}

// Session holds the live cart and the cart-drawer visibility flag for one
// storefront session. All mutations are serialized through the session lock,
// persist the new cart before publishing it to subscribers, and bump a
// monotonic version used to discard stale sync responses.
//
// Using a session before Init is a programming error and panics.
type Session struct {
	mu        sync.Mutex
	store     CartStore
	sessionID string
	log       logrus.FieldLogger

	cart    model.Cart
	version uint64
	open    bool
	ready   bool
	subs    []func(model.Cart)
}

func NewSession(store CartStore, sessionID string, log logrus.FieldLogger) *Session {
	return &Session{
		store:     store,
		sessionID: sessionID,
		log:       log.WithField("session", sessionID),
	}
}

// Init loads the persisted cart and activates the session. Visibility always
// starts closed on a fresh load.
func (s *Session) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = s.store.Load(ctx, s.sessionID)
	s.open = false
	s.ready = true
}

// Reset returns the session to its pre-Init state. Test hook.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = model.Cart{}
	s.version = 0
	s.open = false
	s.ready = false
	s.subs = nil
}

func (s *Session) mustReady() {
	if !s.ready {
		panic("cart: session used before Init")
	}
}

// commit persists and publishes a new cart value. Persisting happens before
// subscribers see the cart, so observed and persisted state agree at the
// instant of observation. Caller holds the lock.
func (s *Session) commit(ctx context.Context, next model.Cart) {
	s.store.Save(ctx, s.sessionID, next)
	s.cart = next
	s.version++
	for _, fn := range s.subs {
		fn(next)
	}
}

// Cart returns the current cart value. Callers must treat it as read-only
// and derive all display amounts from it rather than recomputing.
func (s *Session) Cart() model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	return s.cart
}

// Version is the monotonic mutation counter. Exposed for tests.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	return s.version
}

// Subscribe registers an observer invoked synchronously after every
// committed mutation.
func (s *Session) Subscribe(fn func(model.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.subs = append(s.subs, fn)
}

func (s *Session) AddToCart(ctx context.Context, product model.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	next, err := Add(s.cart, product, quantity)
	if err != nil {
		return err
	}
	s.commit(ctx, next)
	return nil
}

func (s *Session) RemoveFromCart(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.commit(ctx, Remove(s.cart, productID))
}

func (s *Session) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.commit(ctx, Update(s.cart, productID, quantity))
}

func (s *Session) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.commit(ctx, Clear(s.cart))
}

// OpenCart, CloseCart and ToggleCart flip the drawer visibility only; they
// never touch persistence.
func (s *Session) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.open = true
}

func (s *Session) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.open = false
}

func (s *Session) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	s.open = !s.open
}

func (s *Session) IsCartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustReady()
	return s.open
}

// Sync sends the current cart to the order backend and, on success, replaces
// the local cart with the server-confirmed one and persists it. The server
// snapshot is discarded if a local mutation landed while the exchange was in
// flight: the version stamp taken before the call no longer matches, and
// overwriting would silently drop that mutation. On failure the local cart
// is untouched and the error is returned for the caller to act on.
func (s *Session) Sync(ctx context.Context, syncer Syncer) error {
	s.mu.Lock()
	s.mustReady()
	local := s.cart
	issued := s.version
	s.mu.Unlock()

	server, err := syncer.SyncCart(ctx, local)
	if err != nil {
		return errors.Wrap(err, "cart sync failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != issued {
		s.log.WithFields(logrus.Fields{
			"issued_version": issued,
			"local_version":  s.version,
		}).Warn("cart changed while sync was in flight, discarding server snapshot")
		return nil
	}
	s.commit(ctx, Normalize(server))
	return nil
}
