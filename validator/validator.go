// Package validator checks request payloads before they reach the cart or
// the ERP. Validation failures are caller errors, not system errors.
package validator

import (
	"strings"

	"github.com/pkg/errors"
)

type AddToCartPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (p AddToCartPayload) Validate() error {
	if p.ProductID <= 0 {
		return errors.New("product_id is required")
	}
	if p.Quantity < 1 {
		return errors.New("quantity must be a positive integer")
	}
	return nil
}

type UpdateQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func (p UpdateQuantityPayload) Validate() error {
	// zero and negative are legal: they remove the line
	return nil
}

type RegisterPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func (p RegisterPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if !looksLikeEmail(p.Email) {
		return errors.New("a valid email is required")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	if !looksLikeEmail(p.Email) {
		return errors.New("a valid email is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type PlaceOrderPayload struct {
	Name          string `json:"name"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"payment_method"`
}

func (p PlaceOrderPayload) Validate() error {
	required := []struct{ field, value string }{
		{"name", p.Name},
		{"street", p.Street},
		{"city", p.City},
		{"zip", p.Zip},
		{"country", p.Country},
		{"payment_method", p.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Errorf("%s is required", r.field)
		}
	}
	return nil
}

// looksLikeEmail is deliberately loose; the ERP re-validates on its side.
func looksLikeEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// ValidationErrorResponse wraps a validation failure for the HTTP edge.
func ValidationErrorResponse(err error) error {
	return errors.Wrap(err, "validation failed")
}
