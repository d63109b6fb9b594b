package repository

import (
	"context"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// OrderRepository persists orders together with their lines.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Summary(ctx context.Context, userID int64) (*model.OrderSummary, error)
	AdminSummary(ctx context.Context, startOfDay time.Time) (*model.AdminOrderSummary, error)
}
