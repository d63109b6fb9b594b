package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ebiblio/storefront/internal/adapter/payment"
	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/domain/repository"
)

// PaymentUseCase creates processor charges, tracks their settlement and
// manages stored cards.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	client   payment.Client
	currency string
	logger   *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, orders repository.OrderRepository, client payment.Client, currency string, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		payments: payments,
		orders:   orders,
		client:   client,
		currency: currency,
		logger:   logger,
	}
}

// CreateIntent registers a charge with the processor and persists the
// resulting intent. Amounts arrive in display units and are charged in
// cents.
func (u *PaymentUseCase) CreateIntent(ctx context.Context, userID int64, amount float64, currency, description string, orderID *int64) (*model.PaymentIntent, string, error) {
	if amount <= 0 {
		return nil, "", domainErrors.ErrInvalidAmount
	}

	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = u.currency
	}
	if len(currency) != 3 {
		return nil, "", domainErrors.ErrInvalidCurrency
	}

	cents := int64(math.Round(amount * 100))
	remote, err := u.client.CreateIntent(ctx, payment.CreateIntentRequest{
		AmountCents: cents,
		Currency:    currency,
		Description: description,
	})
	if err != nil {
		return nil, "", err
	}

	intent := &model.PaymentIntent{
		UserID:      userID,
		OrderID:     orderID,
		ProviderID:  remote.ID,
		AmountCents: cents,
		Currency:    currency,
		Status:      remote.Status,
		Description: description,
	}

	stored, err := u.payments.CreateIntent(ctx, intent)
	if err != nil {
		return nil, "", err
	}

	return stored, remote.ClientSecret, nil
}

// History lists the user's past charge attempts.
func (u *PaymentUseCase) History(ctx context.Context, userID int64) ([]model.PaymentIntent, error) {
	return u.payments.ListIntentsByUser(ctx, userID)
}

// IntentsForProcessing returns unsettled intents for the polling worker.
func (u *PaymentUseCase) IntentsForProcessing(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	return u.payments.SelectPendingIntents(ctx, limit)
}

// CheckIntent asks the processor for the current state of an intent.
func (u *PaymentUseCase) CheckIntent(ctx context.Context, intent model.PaymentIntent) (model.IntentStatus, error) {
	remote, err := u.client.FetchIntent(ctx, intent.ProviderID)
	if err != nil {
		return "", err
	}
	return remote.Status, nil
}

// SettleIntent records the processor's verdict and moves the linked order
// along with it.
func (u *PaymentUseCase) SettleIntent(ctx context.Context, intent model.PaymentIntent, status model.IntentStatus) error {
	if err := u.payments.UpdateIntentStatus(ctx, intent.ID, status); err != nil {
		return err
	}

	if intent.OrderID == nil || !status.Settled() {
		return nil
	}

	orderStatus := model.OrderStatusCancelled
	if status == model.IntentStatusSucceeded {
		orderStatus = model.OrderStatusPaid
	}
	return u.orders.UpdateStatus(ctx, *intent.OrderID, orderStatus)
}

// AddMethod stores a card reference for later checkouts.
func (u *PaymentUseCase) AddMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error) {
	if len(method.Last4) != 4 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if method.ExpMonth < 1 || method.ExpMonth > 12 || method.ExpYear < time.Now().Year() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if method.Brand == "" {
		method.Brand = "card"
	}
	return u.payments.CreateMethod(ctx, method)
}

// ListMethods returns the user's stored cards, default first.
func (u *PaymentUseCase) ListMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	return u.payments.ListMethods(ctx, userID)
}

// SetDefaultMethod marks one stored card as the default.
func (u *PaymentUseCase) SetDefaultMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error) {
	return u.payments.SetDefaultMethod(ctx, userID, methodID)
}

// DeleteMethod removes a stored card.
func (u *PaymentUseCase) DeleteMethod(ctx context.Context, userID, methodID int64) error {
	return u.payments.DeleteMethod(ctx, userID, methodID)
}

// RemoveAllMethods drops every stored card of a user, used when the account
// is deleted.
func (u *PaymentUseCase) RemoveAllMethods(ctx context.Context, userID int64) error {
	return u.payments.DeleteMethods(ctx, userID)
}
