package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// ErrIntentNotFound indicates the processor doesn't know the intent.
var ErrIntentNotFound = errors.New("payment intent not found")

// TooManyRequestsError represents rate limiting signal from the processor.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Intent is the processor-side view of a charge attempt.
type Intent struct {
	ID           string
	ClientSecret string
	Status       model.IntentStatus
	AmountCents  int64
	Currency     string
	Description  string
}

// CreateIntentRequest carries the fields sent to the processor.
type CreateIntentRequest struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// Client exposes operations against the hosted payment processor.
type Client interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error)
	FetchIntent(ctx context.Context, providerID string) (*Intent, error)
}

// HTTPClient implements Client via the processor's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// intentPayload mirrors the processor's JSON representation.
type intentPayload struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Description  string            `json:"description,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewHTTPClient creates HTTP payment client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent registers a new charge attempt with the processor.
func (c *HTTPClient) CreateIntent(ctx context.Context, req CreateIntentRequest) (*Intent, error) {
	body, err := json.Marshal(intentPayload{
		Amount:      req.AmountCents,
		Currency:    req.Currency,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/payment_intents")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeIntent(resp)
}

// FetchIntent queries the processor for intent status.
func (c *HTTPClient) FetchIntent(ctx context.Context, providerID string) (*Intent, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/payment_intents/", providerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return c.decodeIntent(resp)
}

func (c *HTTPClient) decodeIntent(resp *http.Response) (*Intent, error) {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data intentPayload
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &Intent{
			ID:           data.ID,
			ClientSecret: data.ClientSecret,
			Status:       parseStatus(data.Status),
			AmountCents:  data.Amount,
			Currency:     data.Currency,
			Description:  data.Description,
		}, nil
	case http.StatusNotFound:
		return nil, ErrIntentNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment processor error: %s", resp.Status)
	}
}

func parseStatus(raw string) model.IntentStatus {
	switch model.IntentStatus(raw) {
	case model.IntentStatusProcessing, model.IntentStatusSucceeded, model.IntentStatusCanceled, model.IntentStatusFailed:
		return model.IntentStatus(raw)
	default:
		return model.IntentStatusRequiresPayment
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
