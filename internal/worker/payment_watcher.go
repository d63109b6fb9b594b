package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ebiblio/storefront/internal/adapter/payment"
	"github.com/ebiblio/storefront/internal/domain/model"
)

// SettlementFacade exposes the subset of application functionality required by the worker.
type SettlementFacade interface {
	IntentsForProcessing(ctx context.Context, limit int) ([]model.PaymentIntent, error)
	CheckIntent(ctx context.Context, intent model.PaymentIntent) (model.IntentStatus, error)
	SettleIntent(ctx context.Context, intent model.PaymentIntent, status model.IntentStatus) error
}

// PaymentWatcher polls the payment processor and settles intents concurrently.
type PaymentWatcher struct {
	facade       SettlementFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.PaymentIntent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentWatcher constructs the settlement worker pool.
func NewPaymentWatcher(facade SettlementFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.PaymentIntent, batchSize*workers),
	}
}

// Start launches background processing.
func (p *PaymentWatcher) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentWatcher) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentWatcher) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentWatcher) fetchAndDispatch(ctx context.Context) {
	intents, err := p.facade.IntentsForProcessing(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch intents for processing failed", slog.String("error", err.Error()))
		return
	}
	for _, intent := range intents {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- intent:
		}
	}
}

func (p *PaymentWatcher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case intent, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleIntent(ctx, intent)
		}
	}
}

func (p *PaymentWatcher) handleIntent(ctx context.Context, intent model.PaymentIntent) {
	status, err := p.facade.CheckIntent(ctx, intent)
	if err != nil {
		switch e := err.(type) {
		case payment.TooManyRequestsError:
			p.logger.Warn("payment processor rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, payment.ErrIntentNotFound) {
				time.Sleep(p.pollInterval)
				return
			}
			p.logger.Error("intent fetch failed", slog.String("intent", intent.ProviderID), slog.String("error", err.Error()))
		}
		return
	}

	if status == intent.Status {
		return
	}

	if err := p.facade.SettleIntent(ctx, intent, status); err != nil {
		p.logger.Error("settle intent failed", slog.String("intent", intent.ProviderID), slog.String("error", err.Error()))
	}
}
