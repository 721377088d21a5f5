package cart

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaan-distributors/storefront/pkg/model"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// recordingStore captures every Save so tests can assert ordering and
// persisted payloads.
type recordingStore struct {
	loaded model.Cart
	saves  []model.Cart
}

func (r *recordingStore) Load(_ context.Context, _ string) model.Cart { return r.loaded }

func (r *recordingStore) Save(_ context.Context, _ string, c model.Cart) {
	r.saves = append(r.saves, c)
}

type syncerFunc func(ctx context.Context, c model.Cart) (model.Cart, error)

func (f syncerFunc) SyncCart(ctx context.Context, c model.Cart) (model.Cart, error) {
	return f(ctx, c)
}

func newTestSession(t *testing.T, store CartStore) *Session {
	t.Helper()
	if store == nil {
		store = &recordingStore{loaded: model.EmptyCart()}
	}
	s := NewSession(store, "sess-1", testLogger())
	s.Init(context.Background())
	return s
}

func TestSessionPanicsBeforeInit(t *testing.T) {
	s := NewSession(&recordingStore{}, "sess-1", testLogger())
	assert.PanicsWithValue(t, "cart: session used before Init", func() { s.Cart() })
	assert.PanicsWithValue(t, "cart: session used before Init", func() { s.ToggleCart() })
	assert.PanicsWithValue(t, "cart: session used before Init", func() {
		_ = s.AddToCart(context.Background(), banana(), 1)
	})
}

func TestSessionInitLoadsPersistedCart(t *testing.T) {
	persisted, err := Add(model.EmptyCart(), banana(), 2)
	require.NoError(t, err)
	s := newTestSession(t, &recordingStore{loaded: persisted})

	assert.Equal(t, persisted, s.Cart())
	assert.False(t, s.IsCartOpen(), "visibility always starts closed")
}

func TestSessionPersistsBeforePublishing(t *testing.T) {
	store := &recordingStore{loaded: model.EmptyCart()}
	s := newTestSession(t, store)

	var seen []model.Cart
	s.Subscribe(func(c model.Cart) {
		// Every publish must already be on disk.
		require.NotEmpty(t, store.saves)
		assert.Equal(t, c, store.saves[len(store.saves)-1])
		seen = append(seen, c)
	})

	require.NoError(t, s.AddToCart(context.Background(), banana(), 2))
	s.UpdateQuantity(context.Background(), 1, 5)
	s.RemoveFromCart(context.Background(), 1)

	require.Len(t, seen, 3)
	assert.Equal(t, 14.95, seen[1].Total)
	assert.Empty(t, seen[2].Items)
	assert.Equal(t, store.saves, seen)
}

func TestSessionRejectedAddDoesNotPersist(t *testing.T) {
	store := &recordingStore{loaded: model.EmptyCart()}
	s := newTestSession(t, store)

	err := s.AddToCart(context.Background(), banana(), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Empty(t, store.saves)
	assert.Equal(t, uint64(0), s.Version())
}

func TestSessionClearCart(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 2))
	require.NoError(t, s.AddToCart(context.Background(), eggs(), 1))

	s.ClearCart(context.Background())
	assert.Equal(t, model.EmptyCart(), s.Cart())
}

func TestSessionVisibility(t *testing.T) {
	s := newTestSession(t, nil)

	assert.False(t, s.IsCartOpen())
	s.OpenCart()
	assert.True(t, s.IsCartOpen())
	s.ToggleCart()
	assert.False(t, s.IsCartOpen())
	s.ToggleCart()
	assert.True(t, s.IsCartOpen())
	s.CloseCart()
	assert.False(t, s.IsCartOpen())

	// Visibility flips never persist anything.
	store := s.store.(*recordingStore)
	assert.Empty(t, store.saves)
}

func TestSessionSyncReplacesCartOnSuccess(t *testing.T) {
	store := &recordingStore{loaded: model.EmptyCart()}
	s := newTestSession(t, store)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 2))

	repriced := banana()
	repriced.Price = 3.49
	server, err := Add(model.EmptyCart(), repriced, 2)
	require.NoError(t, err)

	var sent model.Cart
	err = s.Sync(context.Background(), syncerFunc(func(_ context.Context, c model.Cart) (model.Cart, error) {
		sent = c
		return server, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, 5.98, sent.Total, "local cart is what goes to the server")
	assert.Equal(t, server, s.Cart(), "server snapshot replaces the cart wholesale")
	assert.Equal(t, server, store.saves[len(store.saves)-1], "confirmed cart is persisted")
}

func TestSessionSyncFailureLeavesCartUntouched(t *testing.T) {
	store := &recordingStore{loaded: model.EmptyCart()}
	s := newTestSession(t, store)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 2))
	before := s.Cart()
	saves := len(store.saves)

	err := s.Sync(context.Background(), syncerFunc(func(_ context.Context, _ model.Cart) (model.Cart, error) {
		return model.Cart{}, errors.New("erp unreachable")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart sync failed")
	assert.Equal(t, before, s.Cart())
	assert.Len(t, store.saves, saves, "no persistence on failed sync")
}

func TestSessionSyncDiscardsStaleResponse(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 2))

	server, err := Add(model.EmptyCart(), banana(), 99)
	require.NoError(t, err)

	err = s.Sync(context.Background(), syncerFunc(func(ctx context.Context, c model.Cart) (model.Cart, error) {
		// A user mutation lands while the exchange is in flight.
		require.NoError(t, s.AddToCart(ctx, eggs(), 1))
		return server, nil
	}))
	require.NoError(t, err)

	got := s.Cart()
	require.Len(t, got.Items, 2, "in-flight mutation must survive")
	assert.NotEqual(t, 99, got.Items[0].Quantity, "stale server snapshot must be discarded")
}

func TestSessionSubscribersSeeSyncResult(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 1))

	var last model.Cart
	s.Subscribe(func(c model.Cart) { last = c })

	server, err := Add(model.EmptyCart(), banana(), 4)
	require.NoError(t, err)
	require.NoError(t, s.Sync(context.Background(), syncerFunc(func(_ context.Context, _ model.Cart) (model.Cart, error) {
		return server, nil
	})))

	assert.Equal(t, server, last)
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.AddToCart(context.Background(), banana(), 1))
	s.OpenCart()

	s.Reset()
	assert.Panics(t, func() { s.Cart() })

	s.Init(context.Background())
	assert.False(t, s.IsCartOpen())
	assert.Equal(t, uint64(0), s.Version())
}

func TestManagerReusesSessions(t *testing.T) {
	store := &recordingStore{loaded: model.EmptyCart()}
	m := NewManager(store, testLogger())

	a := m.Session(context.Background(), "sess-a")
	require.NoError(t, a.AddToCart(context.Background(), banana(), 2))

	again := m.Session(context.Background(), "sess-a")
	assert.Same(t, a, again)
	assert.Equal(t, 2, again.Cart().ItemCount)

	b := m.Session(context.Background(), "sess-b")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, m.Len())

	m.Drop("sess-a")
	assert.Equal(t, 1, m.Len())
}
