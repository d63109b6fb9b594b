package repository

import (
	"context"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// PaymentRepository persists stored cards and processor intents.
type PaymentRepository interface {
	CreateMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error)
	ListMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error)
	SetDefaultMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error)
	DeleteMethod(ctx context.Context, userID, methodID int64) error
	DeleteMethods(ctx context.Context, userID int64) error

	CreateIntent(ctx context.Context, intent *model.PaymentIntent) (*model.PaymentIntent, error)
	ListIntentsByUser(ctx context.Context, userID int64) ([]model.PaymentIntent, error)
	SelectPendingIntents(ctx context.Context, limit int) ([]model.PaymentIntent, error)
	UpdateIntentStatus(ctx context.Context, intentID int64, status model.IntentStatus) error
}
