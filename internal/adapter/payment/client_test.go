package payment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", "key", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", "key", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCreateIntentSendsAuthorizedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/v1/payment_intents" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}

		var payload intentPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Amount != 2599 || payload.Currency != "usd" {
			t.Fatalf("unexpected payload %+v", payload)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(intentPayload{
			ID:           "pi_123",
			ClientSecret: "pi_123_secret",
			Status:       "processing",
			Amount:       payload.Amount,
			Currency:     payload.Currency,
		})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk-test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	intent, err := client.CreateIntent(context.Background(), CreateIntentRequest{
		AmountCents: 2599,
		Currency:    "usd",
		Description: "commande AB12CD34",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.ID != "pi_123" || intent.Status != model.IntentStatusProcessing {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if intent.ClientSecret != "pi_123_secret" {
		t.Fatalf("unexpected client secret %q", intent.ClientSecret)
	}
}

func TestFetchIntentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk-test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := client.FetchIntent(context.Background(), "pi_missing"); !errors.Is(err, ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestFetchIntentRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk-test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.FetchIntent(context.Background(), "pi_123")
	var rateErr TooManyRequestsError
	if !errors.As(err, &rateErr) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rateErr.RetryAfter != 7*time.Second {
		t.Fatalf("unexpected retry-after %s", rateErr.RetryAfter)
	}
}

func TestFetchIntentUnknownStatusDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(intentPayload{ID: "pi_123", Status: "weird"})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, "sk-test", testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	intent, err := client.FetchIntent(context.Background(), "pi_123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Status != model.IntentStatusRequiresPayment {
		t.Fatalf("expected unknown status to map to requires_payment_method, got %s", intent.Status)
	}
}
