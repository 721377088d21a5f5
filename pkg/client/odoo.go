// Package client talks to the external ERP (Odoo) over its JSON HTTP
// boundary. The ERP is authoritative for stock and pricing; everything here
// is a single request/response exchange with no internal retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jaan-distributors/storefront/pkg/model"
)

const callTimeout = 3 * time.Second

// OrderRequest is the checkout payload: the full cart plus addresses and
// payment method.
type OrderRequest struct {
	Cart            model.Cart    `json:"cart"`
	ShippingAddress model.Address `json:"shipping_address"`
	BillingAddress  model.Address `json:"billing_address"`
	PaymentMethod   string        `json:"payment_method"`
	Notes           string        `json:"notes,omitempty"`
}

// OdooClient wraps the ERP endpoints behind a circuit breaker with a
// per-call timeout, so a dead backend degrades fast instead of piling up
// blocked checkouts.
type OdooClient struct {
	baseURL string
	httpc   *http.Client
	cb      *gobreaker.CircuitBreaker
	log     logrus.FieldLogger
}

func NewOdooClient(baseURL string, log logrus.FieldLogger) *OdooClient {
	st := gobreaker.Settings{
		Name:        "OdooERP",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("CircuitBreaker[%s] state changed from %s to %s", name, from, to)
		},
	}

	return &OdooClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: callTimeout + time.Second},
		cb:      gobreaker.NewCircuitBreaker(st),
		log:     log,
	}
}

// exchange performs one JSON POST/GET through the breaker and returns the
// raw response body.
func (c *OdooClient) exchange(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, errors.Errorf("erp returned %s", resp.Status)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

// call runs one exchange and unwraps the {success, data, error} envelope.
// A non-success envelope surfaces the server-supplied error message
// verbatim so the UI can display it.
func call[T any](c *OdooClient, ctx context.Context, method, path string, payload interface{}) (T, error) {
	var zero T
	raw, err := c.exchange(ctx, method, path, payload)
	if err != nil {
		return zero, err
	}
	var env model.APIResponse[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, errors.Wrap(err, "decode response")
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request rejected by erp"
		}
		return zero, errors.New(msg)
	}
	return env.Data, nil
}

// SyncCart validates the cart against current ERP stock and pricing. On
// success the returned cart is the server's corrected view and replaces the
// local one wholesale; on failure the caller keeps its cart unchanged.
func (c *OdooClient) SyncCart(ctx context.Context, cart model.Cart) (model.Cart, error) {
	return call[model.Cart](c, ctx, http.MethodPost, "/api/cart", cart)
}

// CreateOrder places the order and returns the created sale order record.
func (c *OdooClient) CreateOrder(ctx context.Context, req OrderRequest) (model.Order, error) {
	return call[model.Order](c, ctx, http.MethodPost, "/api/orders", req)
}

// ListOrders fetches the session user's order history.
func (c *OdooClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	return call[[]model.Order](c, ctx, http.MethodGet, "/api/orders", nil)
}

// GetOrder fetches a single order by id.
func (c *OdooClient) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	return call[model.Order](c, ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
}
