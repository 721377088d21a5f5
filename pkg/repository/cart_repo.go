// Package repository provides the durable slot implementations behind
// cart.CartStore. The slot holds one serialized cart per session under the
// jaan_cart key prefix; the auth token lives in a separate slot owned by the
// auth package and is never touched here.
package repository

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/jaan-distributors/storefront/pkg/cart"
	"github.com/jaan-distributors/storefront/pkg/model"
)

// slotPrefix is the fixed storage key namespace for serialized carts.
const slotPrefix = "jaan_cart"

// decodeCart parses a stored payload back into a cart. A malformed payload
// is swallowed and logged as a diagnostic; the caller gets the canonical
// empty cart instead of an error. Well-formed payloads are still normalized
// before acceptance, so the invariants hold even if the stored blob drifted.
func decodeCart(raw []byte, log logrus.FieldLogger) model.Cart {
	var c model.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		log.WithField("error", err).Warn("discarding corrupt cart payload")
		return model.EmptyCart()
	}
	return cart.Normalize(c)
}
