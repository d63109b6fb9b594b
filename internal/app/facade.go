package app

import (
	"context"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/usecase"
)

// StorefrontFacade aggregates the use cases behind the surfaces that consume
// them over HTTP and from the settlement worker.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	library  *usecase.LibraryUseCase
	payments *usecase.PaymentUseCase
	admin    *usecase.AdminUseCase
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, library *usecase.LibraryUseCase, payments *usecase.PaymentUseCase, admin *usecase.AdminUseCase) *StorefrontFacade {
	return &StorefrontFacade{
		auth:     auth,
		catalog:  catalog,
		orders:   orders,
		library:  library,
		payments: payments,
		admin:    admin,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, name, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, string, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID int64, name, email string) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, userID, name, email)
}

func (f *StorefrontFacade) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	return f.auth.ChangePassword(ctx, userID, current, next)
}

// DeleteAccount drops the user's stored cards before removing the account.
func (f *StorefrontFacade) DeleteAccount(ctx context.Context, userID int64) error {
	if err := f.payments.RemoveAllMethods(ctx, userID); err != nil {
		return err
	}
	return f.auth.DeleteAccount(ctx, userID)
}

func (f *StorefrontFacade) Books(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StorefrontFacade) Book(ctx context.Context, id int64) (*model.Book, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, userID int64, draft model.CheckoutDraft) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, draft)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *StorefrontFacade) OrdersSummary(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	return f.orders.Summary(ctx, userID)
}

func (f *StorefrontFacade) Shelf(ctx context.Context, userID int64, now time.Time) ([]model.LibraryItem, error) {
	return f.library.Shelf(ctx, userID, now)
}

func (f *StorefrontFacade) OpenItem(ctx context.Context, userID int64, itemID string, now time.Time) (*model.ContentGrant, error) {
	return f.library.Open(ctx, userID, itemID, now)
}

func (f *StorefrontFacade) CreateIntent(ctx context.Context, userID int64, amount float64, currency, description string, orderID *int64) (*model.PaymentIntent, string, error) {
	return f.payments.CreateIntent(ctx, userID, amount, currency, description, orderID)
}

func (f *StorefrontFacade) PaymentHistory(ctx context.Context, userID int64) ([]model.PaymentIntent, error) {
	return f.payments.History(ctx, userID)
}

func (f *StorefrontFacade) AddPaymentMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error) {
	return f.payments.AddMethod(ctx, method)
}

func (f *StorefrontFacade) PaymentMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	return f.payments.ListMethods(ctx, userID)
}

func (f *StorefrontFacade) SetDefaultPaymentMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error) {
	return f.payments.SetDefaultMethod(ctx, userID, methodID)
}

func (f *StorefrontFacade) DeletePaymentMethod(ctx context.Context, userID, methodID int64) error {
	return f.payments.DeleteMethod(ctx, userID, methodID)
}

func (f *StorefrontFacade) IntentsForProcessing(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	return f.payments.IntentsForProcessing(ctx, limit)
}

func (f *StorefrontFacade) CheckIntent(ctx context.Context, intent model.PaymentIntent) (model.IntentStatus, error) {
	return f.payments.CheckIntent(ctx, intent)
}

func (f *StorefrontFacade) SettleIntent(ctx context.Context, intent model.PaymentIntent, status model.IntentStatus) error {
	return f.payments.SettleIntent(ctx, intent, status)
}

func (f *StorefrontFacade) AdminStats(ctx context.Context, now time.Time) (*model.Dashboard, error) {
	return f.admin.Stats(ctx, now)
}

func (f *StorefrontFacade) AdminUsers(ctx context.Context) ([]model.User, error) {
	return f.admin.ListUsers(ctx)
}

func (f *StorefrontFacade) AdminUser(ctx context.Context, id int64) (*model.User, error) {
	return f.admin.GetUser(ctx, id)
}

func (f *StorefrontFacade) AddUser(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
	return f.admin.CreateUser(ctx, email, name, role)
}

func (f *StorefrontFacade) SetUserRole(ctx context.Context, id int64, role model.Role) error {
	return f.admin.UpdateUserRole(ctx, id, role)
}

func (f *StorefrontFacade) RemoveUser(ctx context.Context, actorID, id int64) error {
	return f.admin.DeleteUser(ctx, actorID, id)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *StorefrontFacade) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	return f.catalog.CreateBook(ctx, book)
}

func (f *StorefrontFacade) UpdateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	return f.catalog.UpdateBook(ctx, book)
}

func (f *StorefrontFacade) DeleteBook(ctx context.Context, id int64) error {
	return f.catalog.DeleteBook(ctx, id)
}

func (f *StorefrontFacade) CreateCategory(ctx context.Context, name, slug string) (*model.Category, error) {
	return f.catalog.CreateCategory(ctx, name, slug)
}

func (f *StorefrontFacade) UpdateCategory(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	return f.catalog.UpdateCategory(ctx, id, name, slug)
}

func (f *StorefrontFacade) DeleteCategory(ctx context.Context, id int64) error {
	return f.catalog.DeleteCategory(ctx, id)
}
