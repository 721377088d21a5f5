// Package model holds the wire types of the storefront. The JSON shapes map
// onto Odoo sale/product models so the mock backend can be swapped for the
// real ERP without touching callers.
package model

// StockStatus is the catalog's coarse availability signal.
type StockStatus string

const (
	StockInStock StockStatus = "in_stock"
	StockLow     StockStatus = "low_stock"
	StockOut     StockStatus = "out_of_stock"
)

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
	ParentID     int64  `json:"parent_id,omitempty"`
	ProductCount int    `json:"product_count"`
}

// Product is owned by the catalog; a cart line embeds a denormalized copy
// captured at add time.
type Product struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Slug             string      `json:"slug"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description,omitempty"`
	Price            float64     `json:"price"`
	ComparePrice     float64     `json:"compare_price,omitempty"`
	SKU              string      `json:"sku"`
	CategoryID       int64       `json:"category_id"`
	CategoryName     string      `json:"category_name"`
	Images           []string    `json:"images"`
	StockQuantity    int         `json:"stock_quantity"`
	StockStatus      StockStatus `json:"stock_status"`
	Unit             string      `json:"unit"`
	Weight           float64     `json:"weight,omitempty"`
	IsFeatured       bool        `json:"is_featured,omitempty"`
	IsNew            bool        `json:"is_new,omitempty"`
	CreatedAt        string      `json:"created_at"`
	UpdatedAt        string      `json:"updated_at"`
}

// CartLine is one product entry within a cart. Subtotal is a cache of
// quantity * product.price, never an independent source of truth.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// Cart is the client-side representation of intended purchases. Total and
// ItemCount are derived from the lines and recomputed on every mutation.
type Cart struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// EmptyCart returns the canonical empty cart: no items, zero totals.
func EmptyCart() Cart {
	return Cart{Items: []CartLine{}}
}

type Address struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	Street2   string `json:"street2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default,omitempty"`
}

type OrderLine struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	PriceUnit   float64 `json:"price_unit"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is the server-created record resulting from checkout. The state
// values mirror Odoo sale.order states.
type Order struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	DateOrder       string      `json:"date_order"`
	State           string      `json:"state"`
	PartnerID       int64       `json:"partner_id"`
	PartnerName     string      `json:"partner_name"`
	ShippingAddress Address     `json:"shipping_address"`
	BillingAddress  Address     `json:"billing_address"`
	OrderLines      []OrderLine `json:"order_lines"`
	AmountUntaxed   float64     `json:"amount_untaxed"`
	AmountTax       float64     `json:"amount_tax"`
	AmountTotal     float64     `json:"amount_total"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	Notes           string      `json:"notes,omitempty"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	PartnerID int64     `json:"partner_id"`
	Addresses []Address `json:"addresses"`
	CreatedAt string    `json:"created_at"`
}

// APIResponse is the request/response envelope shared with the ERP boundary
// and exposed by our own JSON API.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}
