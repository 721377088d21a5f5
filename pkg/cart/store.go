// Package cart implements the storefront cart: pure operations over
// immutable Cart values, and the Session container that holds the live cart
// for one storefront session.
package cart

import (
	"math"

	"github.com/pkg/errors"

	"github.com/jaan-distributors/storefront/pkg/model"
)

// ErrInvalidQuantity is returned when a mutation is handed a non-positive
// quantity where only positive quantities are legal. Callers must not expect
// clamping; a bad quantity is a contract violation.
var ErrInvalidQuantity = errors.New("cart: quantity must be a positive integer")

// roundCents keeps every derived money value exact at cent precision so the
// total == sum(subtotals) invariant survives float arithmetic.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// recompute rebuilds all derived fields from the lines. Derived values are
// never patched incrementally; every mutation ends here.
func recompute(items []model.CartLine) model.Cart {
	c := model.Cart{Items: items}
	for i := range items {
		items[i].Subtotal = roundCents(float64(items[i].Quantity) * items[i].Product.Price)
		c.Total += items[i].Subtotal
		c.ItemCount += items[i].Quantity
	}
	c.Total = roundCents(c.Total)
	return c
}

func cloneItems(items []model.CartLine, extra int) []model.CartLine {
	out := make([]model.CartLine, len(items), len(items)+extra)
	copy(out, items)
	return out
}

// Add returns a new cart with quantity units of product added. If a line for
// the product already exists its quantity is incremented and its product
// snapshot replaced with the one supplied, so a later add refreshes a stale
// cached price. New lines are appended, preserving insertion order.
func Add(c model.Cart, product model.Product, quantity int) (model.Cart, error) {
	if quantity < 1 {
		return c, ErrInvalidQuantity
	}
	items := cloneItems(c.Items, 1)
	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			items[i].Product = product
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.CartLine{
			ProductID: product.ID,
			Product:   product,
			Quantity:  quantity,
		})
	}
	return recompute(items), nil
}

// Remove returns a new cart without the line for productID. A missing line
// is a no-op, not an error.
func Remove(c model.Cart, productID int64) model.Cart {
	items := make([]model.CartLine, 0, len(c.Items))
	for _, ln := range c.Items {
		if ln.ProductID != productID {
			items = append(items, ln)
		}
	}
	return recompute(items)
}

// Update sets the line's quantity to exactly quantity (absolute, not delta).
// A quantity <= 0 is equivalent to Remove. A missing productID is a no-op.
func Update(c model.Cart, productID int64, quantity int) model.Cart {
	if quantity <= 0 {
		return Remove(c, productID)
	}
	items := cloneItems(c.Items, 0)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	return recompute(items)
}

// Clear returns the canonical empty cart regardless of input.
func Clear(model.Cart) model.Cart {
	return model.EmptyCart()
}

// Normalize validates a cart that arrived from outside the process (storage
// or the ERP). Lines with no product identity, a non-positive quantity, or a
// negative price are dropped; duplicate product lines are merged into the
// first occurrence; derived fields are recomputed. The result always
// satisfies the cart invariants.
func Normalize(c model.Cart) model.Cart {
	items := make([]model.CartLine, 0, len(c.Items))
	index := make(map[int64]int, len(c.Items))
	for _, ln := range c.Items {
		if ln.ProductID == 0 {
			ln.ProductID = ln.Product.ID
		}
		if ln.ProductID == 0 || ln.Quantity < 1 || ln.Product.Price < 0 {
			continue
		}
		if i, ok := index[ln.ProductID]; ok {
			items[i].Quantity += ln.Quantity
			continue
		}
		index[ln.ProductID] = len(items)
		items = append(items, ln)
	}
	return recompute(items)
}
