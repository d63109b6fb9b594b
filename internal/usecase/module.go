package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ebiblio/storefront/internal/adapter/mailer"
	"github.com/ebiblio/storefront/internal/adapter/payment"
	"github.com/ebiblio/storefront/internal/config"
	"github.com/ebiblio/storefront/internal/domain/repository"
	pkgAuth "github.com/ebiblio/storefront/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewAdminUseCase,
	newOrderUseCase,
	newLibraryUseCase,
	newPaymentUseCase,
)

type orderParams struct {
	fx.In

	Orders   repository.OrderRepository
	Books    repository.BookRepository
	Users    repository.UserRepository
	Notifier mailer.Notifier
	Logger   *slog.Logger
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Books, p.Users, p.Notifier, p.Logger)
}

type libraryParams struct {
	fx.In

	Orders repository.OrderRepository
	Books  repository.BookRepository
	Grants pkgAuth.GrantSigner
	Logger *slog.Logger
	Config *config.Config
}

func newLibraryUseCase(p libraryParams) *LibraryUseCase {
	return NewLibraryUseCase(p.Orders, p.Books, p.Grants, p.Logger, p.Config.LookupTimeout, p.Config.ContentGrantTTL)
}

type paymentParams struct {
	fx.In

	Payments repository.PaymentRepository
	Orders   repository.OrderRepository
	Client   payment.Client
	Logger   *slog.Logger
	Config   *config.Config
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Payments, p.Orders, p.Client, p.Config.PaymentCurrency, p.Logger)
}
