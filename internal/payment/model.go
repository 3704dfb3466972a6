package payment

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Methods the storefront offers. Card goes through the processor first,
// cash-on-delivery is recorded directly at checkout.
const (
	MethodCard   = "card"
	MethodPaypal = "paypal"
	MethodCOD    = "cod"
	MethodWallet = "wallet"
)

const (
	StatusPending  = "pending"
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusRefunded = "refunded"
)

type Payment struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order"`
	BuyerID          string          `json:"buyer"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Status           string          `json:"status"`
	TransactionID    string          `json:"transactionId,omitempty"`
	ProviderResponse json.RawMessage `json:"providerResponse,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// RecordPaymentRequest is the POST /payments/record payload.
type RecordPaymentRequest struct {
	OrderID       string          `json:"order"`
	BuyerID       string          `json:"buyerId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId"`
	Status        string          `json:"status"`
}

// CreateIntentRequest is the POST /payments/create-intent payload.
type CreateIntentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
