package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ebiblio/storefront/internal/adapter/mailer"
	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/domain/repository"
)

const (
	digitalRentalDays = 7
	paperRentalDays   = 14
	paperDeliveryDays = 3
)

// OrderUseCase encapsulates checkout and order history logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	books    repository.BookRepository
	users    repository.UserRepository
	notifier mailer.Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, books repository.BookRepository, users repository.UserRepository, notifier mailer.Notifier, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, books: books, users: users, notifier: notifier, logger: logger}
}

// Checkout enriches the submitted items from the catalog, persists the order
// and fires the side effects that go with it. The mail receipt is
// best-effort; user stats increments are not.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, draft model.CheckoutDraft) (*model.Order, error) {
	if len(draft.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	now := time.Now()
	order := &model.Order{
		UserID:        userID,
		Number:        newOrderNumber(),
		CustomerEmail: draft.Shipping.Email,
		Status:        model.OrderStatusPending,
		PaymentMethod: draft.PaymentMethod,
		Shipping:      draft.Shipping,
	}

	var stats model.UserStats
	for _, item := range draft.Items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}

		line, err := u.buildLine(ctx, item, now)
		if err != nil {
			return nil, err
		}

		order.Lines = append(order.Lines, *line)
		order.TotalAmount += line.Price * float64(line.Quantity)
		if line.Kind.IsRental() {
			stats.BooksRented += line.Quantity
		} else {
			stats.BooksBought += line.Quantity
		}
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	stats.Orders = 1
	stats.TotalSpent = created.TotalAmount
	if err := u.users.AddStats(ctx, userID, stats); err != nil {
		u.logger.Error("failed to update user stats",
			slog.Int64("user", userID), slog.String("error", err.Error()))
	}

	if created.CustomerEmail != "" {
		if err := u.notifier.SendReceipt(ctx, *created, created.CustomerEmail); err != nil {
			u.logger.Warn("failed to send order receipt",
				slog.String("order", created.Number), slog.String("error", err.Error()))
		}
	}

	return created, nil
}

func (u *OrderUseCase) buildLine(ctx context.Context, item model.CheckoutItem, now time.Time) (*model.OrderLine, error) {
	book, err := u.books.GetByID(ctx, item.BookID)
	if err != nil {
		return nil, err
	}

	line := &model.OrderLine{
		BookID:   book.ID,
		Quantity: item.Quantity,
		Kind:     model.ParseLineKind(item.Type),
		Format:   book.Format,
		Price:    book.Price,
		PDFURL:   book.PDFURL,
		Book: model.BookRef{
			Title:  book.Title,
			Author: book.Author,
			Image:  book.Image,
			PDFURL: book.PDFURL,
		},
	}

	if line.Kind.IsRental() {
		if book.RentPrice != nil {
			line.Price = *book.RentPrice
		}

		days := item.RentalDurationDays
		if days <= 0 {
			days = digitalRentalDays
			if book.Format == model.FormatPaper {
				days = paperRentalDays
			}
		}

		start := now
		end := start.Add(time.Duration(days) * 24 * time.Hour)
		line.RentalStartAt = &start
		line.RentalEndAt = &end
		line.RentalDurationDays = days
		if book.Format == model.FormatPaper {
			line.ReturnDueAt = &end
		}
	}

	if book.Format == model.FormatPaper {
		eta := now.Add(paperDeliveryDays * 24 * time.Hour)
		line.DeliveryETA = &eta
	}

	return line, nil
}

// Get fetches one order, refusing cross-user reads.
func (u *OrderUseCase) Get(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAll returns every order for the back office.
func (u *OrderUseCase) ListAll(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// Summary aggregates the user's order history.
func (u *OrderUseCase) Summary(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	return u.orders.Summary(ctx, userID)
}

// UpdateStatus moves an order through its fulfilment lifecycle.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	switch status {
	case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusShipped,
		model.OrderStatusCompleted, model.OrderStatusCancelled:
	default:
		return errors.New("unknown order status")
	}
	return u.orders.UpdateStatus(ctx, orderID, status)
}

// newOrderNumber derives a short human-readable order number from a random
// UUID's first group.
func newOrderNumber() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}
