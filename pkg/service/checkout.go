// Package service orchestrates checkout: stock validation, the final cart
// sync against the ERP, order creation, and clearing the cart.
package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/catalog"
	"github.com/jaan-distributors/storefront/pkg/client"
	"github.com/jaan-distributors/storefront/pkg/model"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// ERP is the slice of the order backend checkout needs.
type ERP interface {
	SyncCart(ctx context.Context, c model.Cart) (model.Cart, error)
	CreateOrder(ctx context.Context, req client.OrderRequest) (model.Order, error)
}

type CheckoutRequest struct {
	ShippingAddress model.Address `json:"shipping_address"`
	BillingAddress  model.Address `json:"billing_address"`
	PaymentMethod   string        `json:"payment_method"`
	Notes           string        `json:"notes,omitempty"`
}

type CheckoutService struct {
	catalog catalog.ProductRepository
	erp     ERP
	log     logrus.FieldLogger
}

func NewCheckoutService(cat catalog.ProductRepository, erp ERP, log logrus.FieldLogger) *CheckoutService {
	return &CheckoutService{catalog: cat, erp: erp, log: log}
}

// PlaceOrder runs the checkout flow for a session:
//
//  1. local stock check against the catalog, one lookup per line
//  2. cart sync — the ERP is authoritative; a failed sync blocks checkout
//     and the session's cart is left exactly as it was
//  3. order creation from the server-confirmed cart
//  4. on success the cart is cleared and persisted empty
//
// The session's mutation controls are expected to be disabled while this
// runs; a mutation that slips in anyway makes the sync result stale and the
// session discards it, failing the checkout at order creation time rather
// than silently dropping the mutation.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sess *cart.Session, req CheckoutRequest) (model.Order, error) {
	c := sess.Cart()
	if len(c.Items) == 0 {
		return model.Order{}, ErrEmptyCart
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ln := range c.Items {
		ln := ln
		g.Go(func() error {
			p, err := s.catalog.GetProductByID(gctx, ln.ProductID)
			if err != nil {
				// not in the local catalog: leave the verdict to the ERP sync
				if errors.Is(err, catalog.ErrNotFound) {
					return nil
				}
				return errors.Wrapf(err, "stock check failed for product %d", ln.ProductID)
			}
			if p.StockStatus == model.StockOut {
				return errors.Errorf("%s is out of stock", p.Name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.Order{}, err
	}

	if err := sess.Sync(ctx, s.erp); err != nil {
		return model.Order{}, err
	}

	order, err := s.erp.CreateOrder(ctx, client.OrderRequest{
		Cart:            sess.Cart(),
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		return model.Order{}, errors.Wrap(err, "failed to create order")
	}

	s.log.WithField("order", order.Name).Info("order placed")
	sess.ClearCart(ctx)
	return order, nil
}
