package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartPayload(t *testing.T) {
	assert.NoError(t, AddToCartPayload{ProductID: 1, Quantity: 1}.Validate())

	err := AddToCartPayload{Quantity: 1}.Validate()
	require.Error(t, err)
	assert.Equal(t, "product_id is required", err.Error())

	for _, q := range []int{0, -1} {
		err := AddToCartPayload{ProductID: 1, Quantity: q}.Validate()
		require.Error(t, err, "quantity %d", q)
		assert.Equal(t, "quantity must be a positive integer", err.Error())
	}
}

func TestUpdateQuantityPayloadAcceptsAnyQuantity(t *testing.T) {
	for _, q := range []int{-5, 0, 1, 100} {
		assert.NoError(t, UpdateQuantityPayload{Quantity: q}.Validate(), "quantity %d", q)
	}
}

func TestRegisterPayload(t *testing.T) {
	valid := RegisterPayload{Name: "Jaan", Email: "jaan@example.com", Password: "s3cret-pass"}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		payload RegisterPayload
		want    string
	}{
		{"blank name", RegisterPayload{Name: "  ", Email: "jaan@example.com", Password: "s3cret-pass"}, "name is required"},
		{"bad email", RegisterPayload{Name: "Jaan", Email: "not-an-email", Password: "s3cret-pass"}, "a valid email is required"},
		{"short password", RegisterPayload{Name: "Jaan", Email: "jaan@example.com", Password: "short"}, "password must be at least 8 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.payload.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestLoginPayload(t *testing.T) {
	assert.NoError(t, LoginPayload{Email: "jaan@example.com", Password: "x"}.Validate())

	err := LoginPayload{Email: "@nope", Password: "x"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "a valid email is required", err.Error())

	err = LoginPayload{Email: "jaan@example.com"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "password is required", err.Error())
}

func TestPlaceOrderPayload(t *testing.T) {
	valid := PlaceOrderPayload{
		Name: "Jaan", Street: "1 Main St", City: "Dhaka",
		Zip: "1207", Country: "BD", PaymentMethod: "cod",
	}
	assert.NoError(t, valid.Validate())

	// Missing fields are reported in declaration order, first one wins.
	missingCity := valid
	missingCity.City = ""
	missingCity.Zip = ""
	err := missingCity.Validate()
	require.Error(t, err)
	assert.Equal(t, "city is required", err.Error())

	missingPayment := valid
	missingPayment.PaymentMethod = "   "
	err = missingPayment.Validate()
	require.Error(t, err)
	assert.Equal(t, "payment_method is required", err.Error())
}

func TestLooksLikeEmail(t *testing.T) {
	good := []string{"a@b", "jaan@example.com", " padded@example.com "}
	for _, s := range good {
		assert.True(t, looksLikeEmail(s), "%q", s)
	}
	bad := []string{"", "plain", "@example.com", "jaan@", "two words@example.com"}
	for _, s := range bad {
		assert.False(t, looksLikeEmail(s), "%q", s)
	}
}

func TestValidationErrorResponse(t *testing.T) {
	err := ValidationErrorResponse(AddToCartPayload{}.Validate())
	require.Error(t, err)
	assert.Equal(t, "validation failed: product_id is required", err.Error())
}
