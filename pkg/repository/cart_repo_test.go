package repository

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/model"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleCart(t *testing.T) model.Cart {
	t.Helper()
	c, err := cart.Add(model.EmptyCart(), model.Product{
		ID: 1, Name: "Organic Bananas", Price: 2.99, Unit: "bunch", StockStatus: model.StockInStock,
	}, 2)
	require.NoError(t, err)
	return c
}

func TestMemorySlotRoundTrip(t *testing.T) {
	store := NewCartMemory(testLogger())
	want := sampleCart(t)

	store.Save(context.Background(), "sess-1", want)
	got := store.Load(context.Background(), "sess-1")

	assert.Equal(t, want, got, "load must restore the exact saved cart")
}

func TestMemorySlotMissingYieldsEmptyCart(t *testing.T) {
	store := NewCartMemory(testLogger())
	assert.Equal(t, model.EmptyCart(), store.Load(context.Background(), "never-saved"))
}

func TestMemorySlotIsolatesSessions(t *testing.T) {
	store := NewCartMemory(testLogger())
	store.Save(context.Background(), "sess-a", sampleCart(t))

	assert.Equal(t, model.EmptyCart(), store.Load(context.Background(), "sess-b"))
}

func TestDecodeCartCorruptPayload(t *testing.T) {
	for _, raw := range []string{"{not json", `"just a string"`, `[1,2,3]`} {
		got := decodeCart([]byte(raw), testLogger())
		assert.Equal(t, model.EmptyCart(), got, "payload %q", raw)
	}
}

func TestDecodeCartNormalizesDriftedPayload(t *testing.T) {
	// A stored blob whose derived fields no longer match its lines.
	raw := []byte(`{
		"items": [
			{"product_id": 1, "product": {"id": 1, "name": "Organic Bananas", "price": 2.99}, "quantity": 2, "subtotal": 100},
			{"product_id": 0, "product": {"id": 0}, "quantity": 3, "subtotal": 1}
		],
		"total": 9999,
		"item_count": 42
	}`)

	got := decodeCart(raw, testLogger())
	require.Len(t, got.Items, 1, "lines without product identity are dropped")
	assert.Equal(t, 5.98, got.Items[0].Subtotal)
	assert.Equal(t, 5.98, got.Total)
	assert.Equal(t, 2, got.ItemCount)
}

func TestNoopSlot(t *testing.T) {
	store := CartNoop{}
	store.Save(context.Background(), "sess-1", sampleCart(t))
	assert.Equal(t, model.EmptyCart(), store.Load(context.Background(), "sess-1"))
}
