package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// WorkerFacadeStub mimics worker interactions with the settlement facade.
type WorkerFacadeStub struct {
	Batches          [][]model.PaymentIntent
	IntentsFn        func(context.Context, int) ([]model.PaymentIntent, error)
	CheckFn          func(context.Context, model.PaymentIntent) (model.IntentStatus, error)
	SettleFn         func(context.Context, model.PaymentIntent, model.IntentStatus) error
	Settled          []IntentUpdateCall
	mu               sync.Mutex
	intentsCallCount int32
}

// IntentsCalls reports how many times the worker polled for intents.
func (s *WorkerFacadeStub) IntentsCalls() int {
	return int(atomic.LoadInt32(&s.intentsCallCount))
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// IntentsForProcessing returns batches from configured queue.
func (s *WorkerFacadeStub) IntentsForProcessing(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	if s.IntentsFn != nil {
		return s.IntentsFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.intentsCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckIntent returns the configured processor verdict.
func (s *WorkerFacadeStub) CheckIntent(ctx context.Context, intent model.PaymentIntent) (model.IntentStatus, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, intent)
	}
	return model.IntentStatusSucceeded, nil
}

// SettleIntent records settlement requests.
func (s *WorkerFacadeStub) SettleIntent(ctx context.Context, intent model.PaymentIntent, status model.IntentStatus) error {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, intent, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Settled = append(s.Settled, IntentUpdateCall{IntentID: intent.ID, Status: status})
	return nil
}
