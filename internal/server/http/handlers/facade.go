package handlers

import (
	"context"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, name, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, string, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int64, name, email string) (*model.User, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	DeleteAccount(ctx context.Context, userID int64) error
}

// CatalogFacade exposes the public catalog.
type CatalogFacade interface {
	Books(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	Book(ctx context.Context, id int64) (*model.Book, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

// OrderFacade encapsulates checkout and order history operations.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, draft model.CheckoutDraft) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, orderID int64) (*model.Order, error)
	OrdersSummary(ctx context.Context, userID int64) (*model.OrderSummary, error)
}

// LibraryFacade serves the digital shelf and its gated open action.
type LibraryFacade interface {
	Shelf(ctx context.Context, userID int64, now time.Time) ([]model.LibraryItem, error)
	OpenItem(ctx context.Context, userID int64, itemID string, now time.Time) (*model.ContentGrant, error)
}

// PaymentFacade provides charge and stored-card operations.
type PaymentFacade interface {
	CreateIntent(ctx context.Context, userID int64, amount float64, currency, description string, orderID *int64) (*model.PaymentIntent, string, error)
	PaymentHistory(ctx context.Context, userID int64) ([]model.PaymentIntent, error)
	AddPaymentMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error)
	PaymentMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error)
	SetDefaultPaymentMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, userID, methodID int64) error
}

// AdminFacade aggregates back-office operations.
type AdminFacade interface {
	AdminStats(ctx context.Context, now time.Time) (*model.Dashboard, error)
	AdminUsers(ctx context.Context) ([]model.User, error)
	AdminUser(ctx context.Context, id int64) (*model.User, error)
	AddUser(ctx context.Context, email, name string, role model.Role) (*model.User, error)
	SetUserRole(ctx context.Context, id int64, role model.Role) error
	RemoveUser(ctx context.Context, actorID, id int64) error
	AllOrders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	CreateBook(ctx context.Context, book *model.Book) (*model.Book, error)
	UpdateBook(ctx context.Context, book *model.Book) (*model.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	CreateCategory(ctx context.Context, name, slug string) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name, slug string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	LibraryFacade
	PaymentFacade
	AdminFacade
}
