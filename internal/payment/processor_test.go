package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStripeClient_CreateIntent(t *testing.T) {
	t.Parallel()

	var gotForm map[string][]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		_ = r.ParseForm()
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_abc",
		})
	}))
	defer srv.Close()

	cli := NewStripeClient("sk_test_xyz", srv.URL)
	in, err := cli.CreateIntent(context.Background(), decimal.RequireFromString("19.995"))
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if in.ID != "pi_123" || in.ClientSecret != "pi_123_secret_abc" {
		t.Fatalf("unexpected intent: %+v", in)
	}
	if gotAuth != "Bearer sk_test_xyz" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	// 19.995 dollars rounds to 2000 minor units
	if got := gotForm["amount"]; len(got) != 1 || got[0] != "2000" {
		t.Fatalf("amount form field = %v, want [2000]", got)
	}
	if got := gotForm["currency"]; len(got) != 1 || got[0] != "usd" {
		t.Fatalf("currency form field = %v", got)
	}
}

func TestStripeClient_CreateIntent_Rejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"amount too small"}}`, http.StatusPaymentRequired)
	}))
	defer srv.Close()

	cli := NewStripeClient("sk_test_xyz", srv.URL)
	_, err := cli.CreateIntent(context.Background(), decimal.NewFromInt(1))
	if !errors.Is(err, ErrProcessor) {
		t.Fatalf("err = %v, want ErrProcessor", err)
	}
}

func TestStripeClient_CreateIntent_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	cli := NewStripeClient("sk_test_xyz", srv.URL)
	_, err := cli.CreateIntent(context.Background(), decimal.NewFromInt(10))
	if !errors.Is(err, ErrProcessor) {
		t.Fatalf("err = %v, want ErrProcessor", err)
	}
}
