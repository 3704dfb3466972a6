package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status labels shown to buyers. Derived from the quantity,
// never set independently of it on stock writes.
const (
	InStock    = "In Stock"
	OutOfStock = "Out of Stock"
)

type Product struct {
	ID       string `json:"id"`
	SellerID string `json:"sellerId,omitempty"`
	Name     string `json:"name"`
	// NUMERIC in Postgres; fractional stock is allowed (produce sold by weight).
	Price       decimal.Decimal `json:"price"`
	Stock       decimal.Decimal `json:"stock"`
	StockStatus string          `json:"stockStatus"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// StatusFor recomputes the stock label: quantity <= 0 means Out of Stock.
func StatusFor(stock decimal.Decimal) string {
	if stock.Sign() <= 0 {
		return OutOfStock
	}
	return InStock
}

// ApplyDecrement takes qty off stock, flooring at zero, and returns the new
// quantity with its recomputed status label. Selling the last of something
// leaves it at exactly zero and Out of Stock, never negative.
func ApplyDecrement(stock, qty decimal.Decimal) (decimal.Decimal, string) {
	rem := stock.Sub(qty)
	if rem.Sign() <= 0 {
		return decimal.Zero, OutOfStock
	}
	return rem, InStock
}

// HTTPError represents a standard error in JSON.
type HTTPError struct {
	Error string `json:"error"`
}

// CreateProductRequest is the multipart form of POST /products.
type CreateProductRequest struct {
	Name     string `form:"name"`
	Price    string `form:"price"`
	Stock    string `form:"stock"`
	SellerID string `form:"sellerId"`
}

// UpdateProductRequest payload of PUT /products/:id.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *decimal.Decimal `json:"stock"`
	StockStatus string           `json:"stockStatus"`
}
