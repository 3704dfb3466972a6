package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProcessor covers every card-processor failure; callers show the buyer a
// generic message and never the wire detail.
var ErrProcessor = errors.New("payment processor error")

// Intent is the charge authorization handed back to the browser. The client
// secret completes the charge client-side; the id becomes the recorded
// transaction id.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Processor interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (*Intent, error)
}

// StripeClient speaks the payment-intents form API directly. BaseURL is
// swappable so tests can stand up an httptest server in its place.
type StripeClient struct {
	HTTP      *http.Client
	SecretKey string
	BaseURL   string
}

func NewStripeClient(secretKey, baseURL string) *StripeClient {
	return &StripeClient{
		HTTP:      &http.Client{Timeout: 10 * time.Second},
		SecretKey: secretKey,
		BaseURL:   strings.TrimRight(baseURL, "/"),
	}
}

func (s *StripeClient) CreateIntent(ctx context.Context, amount decimal.Decimal) (*Intent, error) {
	// The processor wants integer minor units.
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(cents, 10))
	form.Set("currency", "usd")
	form.Add("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.BaseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.SecretKey)

	res, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrProcessor, res.Status)
	}
	var in Intent
	if err := json.NewDecoder(res.Body).Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	if in.ClientSecret == "" {
		return nil, fmt.Errorf("%w: empty client secret", ErrProcessor)
	}
	return &in, nil
}
