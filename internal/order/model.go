package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string          `json:"id"`
	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	BuyerID     string          `json:"buyerId,omitempty"`
	BuyerName   string          `json:"buyerName"`
	Status      Status          `json:"status"`
	DeliveryID  string          `json:"deliveryId,omitempty"`
	PaymentID   string          `json:"payment,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Item is a line item carrying a snapshot of the product at order time,
// so later product edits or deletes never rewrite order history.
type Item struct {
	ID        string          `json:"-"`
	OrderID   string          `json:"-"`
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       decimal.Decimal `json:"qty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	SellerID  string          `json:"sellerId,omitempty"`
}
