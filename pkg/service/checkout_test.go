package service

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/catalog"
	"github.com/jaan-distributors/storefront/pkg/client"
	"github.com/jaan-distributors/storefront/pkg/model"
	"github.com/jaan-distributors/storefront/pkg/repository"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeERP echoes the cart back on sync and records order creation.
type fakeERP struct {
	syncErr   error
	createErr error
	created   []client.OrderRequest
	order     model.Order
}

func (f *fakeERP) SyncCart(_ context.Context, c model.Cart) (model.Cart, error) {
	if f.syncErr != nil {
		return model.Cart{}, f.syncErr
	}
	return c, nil
}

func (f *fakeERP) CreateOrder(_ context.Context, req client.OrderRequest) (model.Order, error) {
	if f.createErr != nil {
		return model.Order{}, f.createErr
	}
	f.created = append(f.created, req)
	return f.order, nil
}

func newCheckoutSession(t *testing.T, productIDs ...int64) *cart.Session {
	t.Helper()
	repo := catalog.NewStaticRepo()
	sess := cart.NewSession(repository.CartNoop{}, "sess-1", testLogger())
	sess.Init(context.Background())
	for _, id := range productIDs {
		p, err := repo.GetProductByID(context.Background(), id)
		require.NoError(t, err)
		require.NoError(t, sess.AddToCart(context.Background(), p, 2))
	}
	return sess
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	svc := NewCheckoutService(catalog.NewStaticRepo(), &fakeERP{}, testLogger())
	sess := newCheckoutSession(t)

	_, err := svc.PlaceOrder(context.Background(), sess, CheckoutRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderOutOfStockBlocks(t *testing.T) {
	erp := &fakeERP{}
	svc := NewCheckoutService(catalog.NewStaticRepo(), erp, testLogger())
	sess := newCheckoutSession(t, 1, 8) // 8 = Greek Yogurt, out of stock

	_, err := svc.PlaceOrder(context.Background(), sess, CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Greek Yogurt is out of stock")
	assert.Empty(t, erp.created)
	assert.Equal(t, 4, sess.Cart().ItemCount, "cart unchanged after a blocked checkout")
}

func TestPlaceOrderSyncFailureBlocks(t *testing.T) {
	erp := &fakeERP{syncErr: errors.New("erp unreachable")}
	svc := NewCheckoutService(catalog.NewStaticRepo(), erp, testLogger())
	sess := newCheckoutSession(t, 1)
	before := sess.Cart()

	_, err := svc.PlaceOrder(context.Background(), sess, CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart sync failed")
	assert.Empty(t, erp.created)
	assert.Equal(t, before, sess.Cart())
}

func TestPlaceOrderCreateFailureKeepsCart(t *testing.T) {
	erp := &fakeERP{createErr: errors.New("payment declined")}
	svc := NewCheckoutService(catalog.NewStaticRepo(), erp, testLogger())
	sess := newCheckoutSession(t, 1)

	_, err := svc.PlaceOrder(context.Background(), sess, CheckoutRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create order")
	assert.NotEmpty(t, sess.Cart().Items, "cart survives a failed order creation")
}

func TestPlaceOrderSuccessClearsCart(t *testing.T) {
	erp := &fakeERP{order: model.Order{ID: 7, Name: "SO007", State: "sale"}}
	svc := NewCheckoutService(catalog.NewStaticRepo(), erp, testLogger())
	sess := newCheckoutSession(t, 1, 2)

	req := CheckoutRequest{
		ShippingAddress: model.Address{Name: "Jaan", City: "Dhaka"},
		PaymentMethod:   "cod",
	}
	order, err := svc.PlaceOrder(context.Background(), sess, req)
	require.NoError(t, err)
	assert.Equal(t, "SO007", order.Name)

	require.Len(t, erp.created, 1)
	assert.Equal(t, "cod", erp.created[0].PaymentMethod)
	assert.Len(t, erp.created[0].Cart.Items, 2, "order is built from the post-sync cart")

	assert.Equal(t, model.EmptyCart(), sess.Cart(), "successful checkout empties the cart")
}

func TestPlaceOrderUnknownProductDefersToERP(t *testing.T) {
	// A product missing from the local catalog is not rejected locally; the
	// ERP sync is the final authority on it.
	erp := &fakeERP{order: model.Order{ID: 9, Name: "SO009"}}
	svc := NewCheckoutService(catalog.NewStaticRepo(), erp, testLogger())

	sess := cart.NewSession(repository.CartNoop{}, "sess-2", testLogger())
	sess.Init(context.Background())
	require.NoError(t, sess.AddToCart(context.Background(), model.Product{
		ID: 999, Name: "Discontinued Item", Price: 1.99,
	}, 1))

	order, err := svc.PlaceOrder(context.Background(), sess, CheckoutRequest{})
	require.NoError(t, err)
	assert.Equal(t, "SO009", order.Name)
}
