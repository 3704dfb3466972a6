package order

import "github.com/shopspring/decimal"

// CreateOrderItem is one cart line in POST /orders.
type CreateOrderItem struct {
	ProductID string          `json:"id"`
	Qty       decimal.Decimal `json:"qty"`
}

// CreateOrderRequest is the checkout payload. TotalAmount is what the cart
// showed the buyer; the persisted total is recomputed from the price
// snapshots taken at creation time.
type CreateOrderRequest struct {
	Items       []CreateOrderItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	BuyerID     string            `json:"buyerId"`
	BuyerName   string            `json:"buyerName"`
}

// UpdateStatusRequest is the PATCH /orders/:id payload.
type UpdateStatusRequest struct {
	Status     string `json:"status"`
	DeliveryID string `json:"deliveryId"`
}

// Filter narrows List; zero values mean "no filter".
type Filter struct {
	Status     string
	DeliveryID string
}
