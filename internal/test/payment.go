package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/ebiblio/storefront/internal/adapter/payment"
	"github.com/ebiblio/storefront/internal/domain/model"
)

// PaymentClientStub simulates the hosted payment processor.
type PaymentClientStub struct {
	mu       sync.Mutex
	CreateFn func(context.Context, payment.CreateIntentRequest) (*payment.Intent, error)
	FetchFn  func(context.Context, string) (*payment.Intent, error)
	Created  []payment.CreateIntentRequest
}

// CreateIntent records the request and returns a processing intent.
func (s *PaymentClientStub) CreateIntent(ctx context.Context, req payment.CreateIntentRequest) (*payment.Intent, error) {
	s.mu.Lock()
	s.Created = append(s.Created, req)
	seq := len(s.Created)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &payment.Intent{
		ID:           fmt.Sprintf("pi_stub_%d", seq),
		ClientSecret: "cs_stub",
		Status:       model.IntentStatusProcessing,
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		Description:  req.Description,
	}, nil
}

// FetchIntent reports the intent as succeeded unless overridden.
func (s *PaymentClientStub) FetchIntent(ctx context.Context, providerID string) (*payment.Intent, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, providerID)
	}
	return &payment.Intent{ID: providerID, Status: model.IntentStatusSucceeded}, nil
}

var _ payment.Client = (*PaymentClientStub)(nil)
