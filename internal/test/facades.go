package test

import (
	"context"
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn       func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn   func(context.Context, string, string) (*model.User, string, error)
	ParseFn          func(string) (int64, string, error)
	ProfileFn        func(context.Context, int64) (*model.User, error)
	UpdateProfileFn  func(context.Context, int64, string, string) (*model.User, error)
	ChangePasswordFn func(context.Context, int64, string, string) error
	DeleteAccountFn  func(context.Context, int64) error
}

// Register returns a user and token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, name, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return &model.User{ID: 1, Email: email, Name: name, Role: model.RoleCustomer}, "token", nil
}

// Authenticate returns a user and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

// ParseToken returns stored claims for the authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, string(model.RoleCustomer), nil
}

// Profile fetches the stubbed account.
func (s AuthFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Email: "user@example.com", Role: model.RoleCustomer}, nil
}

// UpdateProfile returns the edited account.
func (s AuthFacadeStub) UpdateProfile(ctx context.Context, userID int64, name, email string) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, name, email)
	}
	return &model.User{ID: userID, Name: name, Email: email, Role: model.RoleCustomer}, nil
}

// ChangePassword executes the configured rotation handler.
func (s AuthFacadeStub) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if s.ChangePasswordFn != nil {
		return s.ChangePasswordFn(ctx, userID, current, next)
	}
	return nil
}

// DeleteAccount executes the configured removal handler.
func (s AuthFacadeStub) DeleteAccount(ctx context.Context, userID int64) error {
	if s.DeleteAccountFn != nil {
		return s.DeleteAccountFn(ctx, userID)
	}
	return nil
}

// CatalogFacadeStub simulates public catalog reads.
type CatalogFacadeStub struct {
	BooksFn      func(context.Context, model.BookFilter) ([]model.Book, int, error)
	BookFn       func(context.Context, int64) (*model.Book, error)
	CategoriesFn func(context.Context) ([]model.Category, error)
}

// Books returns configured catalog pages.
func (s CatalogFacadeStub) Books(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	if s.BooksFn != nil {
		return s.BooksFn(ctx, filter)
	}
	return []model.Book{{ID: 1, Title: "Stub"}}, 1, nil
}

// Book returns the configured catalog entry.
func (s CatalogFacadeStub) Book(ctx context.Context, id int64) (*model.Book, error) {
	if s.BookFn != nil {
		return s.BookFn(ctx, id)
	}
	return &model.Book{ID: id, Title: "Stub"}, nil
}

// Categories returns the configured taxonomy.
func (s CatalogFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.Category{{ID: 1, Name: "Romans", Slug: "romans"}}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CheckoutFn func(context.Context, int64, model.CheckoutDraft) (*model.Order, error)
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	OrderFn    func(context.Context, int64, int64) (*model.Order, error)
	SummaryFn  func(context.Context, int64) (*model.OrderSummary, error)
}

// Checkout delegates to provided function or returns a default order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, draft model.CheckoutDraft) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, draft)
	}
	return &model.Order{ID: 1, UserID: userID, Number: "AB12CD34", Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID, Number: "AB12CD34"}}, nil
}

// Order returns one predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, UserID: userID, Number: "AB12CD34"}, nil
}

// OrdersSummary returns configured aggregates.
func (s OrderFacadeStub) OrdersSummary(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	return &model.OrderSummary{TotalOrders: 1, TotalAmount: 10}, nil
}

// LibraryFacadeStub simulates the digital shelf.
type LibraryFacadeStub struct {
	ShelfFn func(context.Context, int64, time.Time) ([]model.LibraryItem, error)
	OpenFn  func(context.Context, int64, string, time.Time) (*model.ContentGrant, error)
}

// Shelf returns configured shelf items.
func (s LibraryFacadeStub) Shelf(ctx context.Context, userID int64, now time.Time) ([]model.LibraryItem, error) {
	if s.ShelfFn != nil {
		return s.ShelfFn(ctx, userID, now)
	}
	return []model.LibraryItem{{ID: "1-1", BookID: 1, StatusLabel: model.LabelPermanent, PDFURL: "https://cdn/1.pdf"}}, nil
}

// OpenItem returns a configured grant.
func (s LibraryFacadeStub) OpenItem(ctx context.Context, userID int64, itemID string, now time.Time) (*model.ContentGrant, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, userID, itemID, now)
	}
	return &model.ContentGrant{ItemID: itemID, URL: "https://cdn/1.pdf", Token: "grant", ExpiresAt: now.Add(time.Minute)}, nil
}

// PaymentFacadeStub simulates charge and stored-card operations.
type PaymentFacadeStub struct {
	CreateIntentFn func(context.Context, int64, float64, string, string, *int64) (*model.PaymentIntent, string, error)
	HistoryFn      func(context.Context, int64) ([]model.PaymentIntent, error)
	AddMethodFn    func(context.Context, *model.PaymentMethod) (*model.PaymentMethod, error)
	MethodsFn      func(context.Context, int64) ([]model.PaymentMethod, error)
	SetDefaultFn   func(context.Context, int64, int64) (*model.PaymentMethod, error)
	DeleteMethodFn func(context.Context, int64, int64) error
}

// CreateIntent returns a configured intent.
func (s PaymentFacadeStub) CreateIntent(ctx context.Context, userID int64, amount float64, currency, description string, orderID *int64) (*model.PaymentIntent, string, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, userID, amount, currency, description, orderID)
	}
	return &model.PaymentIntent{ID: 1, UserID: userID, AmountCents: int64(amount * 100), Status: model.IntentStatusProcessing}, "cs_stub", nil
}

// PaymentHistory returns configured intents.
func (s PaymentFacadeStub) PaymentHistory(ctx context.Context, userID int64) ([]model.PaymentIntent, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.PaymentIntent{{ID: 1, UserID: userID}}, nil
}

// AddPaymentMethod returns the stored card.
func (s PaymentFacadeStub) AddPaymentMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error) {
	if s.AddMethodFn != nil {
		return s.AddMethodFn(ctx, method)
	}
	method.ID = 1
	return method, nil
}

// PaymentMethods returns configured cards.
func (s PaymentFacadeStub) PaymentMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	if s.MethodsFn != nil {
		return s.MethodsFn(ctx, userID)
	}
	return []model.PaymentMethod{{ID: 1, UserID: userID, Last4: "4242"}}, nil
}

// SetDefaultPaymentMethod returns the promoted card.
func (s PaymentFacadeStub) SetDefaultPaymentMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error) {
	if s.SetDefaultFn != nil {
		return s.SetDefaultFn(ctx, userID, methodID)
	}
	return &model.PaymentMethod{ID: methodID, UserID: userID, IsDefault: true}, nil
}

// DeletePaymentMethod executes the configured removal handler.
func (s PaymentFacadeStub) DeletePaymentMethod(ctx context.Context, userID, methodID int64) error {
	if s.DeleteMethodFn != nil {
		return s.DeleteMethodFn(ctx, userID, methodID)
	}
	return nil
}

// AdminFacadeStub simulates back-office operations.
type AdminFacadeStub struct {
	StatsFn          func(context.Context, time.Time) (*model.Dashboard, error)
	UsersFn          func(context.Context) ([]model.User, error)
	UserFn           func(context.Context, int64) (*model.User, error)
	AddUserFn        func(context.Context, string, string, model.Role) (*model.User, error)
	SetRoleFn        func(context.Context, int64, model.Role) error
	RemoveUserFn     func(context.Context, int64, int64) error
	AllOrdersFn      func(context.Context) ([]model.Order, error)
	SetOrderStatusFn func(context.Context, int64, model.OrderStatus) error
	CreateBookFn     func(context.Context, *model.Book) (*model.Book, error)
	UpdateBookFn     func(context.Context, *model.Book) (*model.Book, error)
	DeleteBookFn     func(context.Context, int64) error
	CreateCategoryFn func(context.Context, string, string) (*model.Category, error)
	UpdateCategoryFn func(context.Context, int64, string, string) (*model.Category, error)
	DeleteCategoryFn func(context.Context, int64) error
}

// AdminStats returns the configured dashboard.
func (s AdminFacadeStub) AdminStats(ctx context.Context, now time.Time) (*model.Dashboard, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, now)
	}
	return &model.Dashboard{UserCount: 2, BookCount: 3}, nil
}

// AdminUsers returns configured accounts.
func (s AdminFacadeStub) AdminUsers(ctx context.Context) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx)
	}
	return []model.User{{ID: 1, Email: "a@b.c"}}, nil
}

// AdminUser returns one configured account.
func (s AdminFacadeStub) AdminUser(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	return &model.User{ID: id, Email: "a@b.c"}, nil
}

// AddUser returns the provisioned account.
func (s AdminFacadeStub) AddUser(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
	if s.AddUserFn != nil {
		return s.AddUserFn(ctx, email, name, role)
	}
	if role == "" {
		role = model.RoleCustomer
	}
	return &model.User{ID: 2, Email: email, Name: name, Role: role}, nil
}

// SetUserRole executes the configured role handler.
func (s AdminFacadeStub) SetUserRole(ctx context.Context, id int64, role model.Role) error {
	if s.SetRoleFn != nil {
		return s.SetRoleFn(ctx, id, role)
	}
	return nil
}

// RemoveUser executes the configured removal handler.
func (s AdminFacadeStub) RemoveUser(ctx context.Context, actorID, id int64) error {
	if s.RemoveUserFn != nil {
		return s.RemoveUserFn(ctx, actorID, id)
	}
	return nil
}

// AllOrders returns configured orders.
func (s AdminFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: 1, Number: "AB12CD34"}}, nil
}

// SetOrderStatus executes the configured status handler.
func (s AdminFacadeStub) SetOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, orderID, status)
	}
	return nil
}

// CreateBook returns the stored book.
func (s AdminFacadeStub) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	if s.CreateBookFn != nil {
		return s.CreateBookFn(ctx, book)
	}
	book.ID = 1
	return book, nil
}

// UpdateBook returns the edited book.
func (s AdminFacadeStub) UpdateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	if s.UpdateBookFn != nil {
		return s.UpdateBookFn(ctx, book)
	}
	return book, nil
}

// DeleteBook executes the configured removal handler.
func (s AdminFacadeStub) DeleteBook(ctx context.Context, id int64) error {
	if s.DeleteBookFn != nil {
		return s.DeleteBookFn(ctx, id)
	}
	return nil
}

// CreateCategory returns the stored category.
func (s AdminFacadeStub) CreateCategory(ctx context.Context, name, slug string) (*model.Category, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, name, slug)
	}
	return &model.Category{ID: 1, Name: name, Slug: slug}, nil
}

// UpdateCategory returns the edited category.
func (s AdminFacadeStub) UpdateCategory(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	if s.UpdateCategoryFn != nil {
		return s.UpdateCategoryFn(ctx, id, name, slug)
	}
	return &model.Category{ID: id, Name: name, Slug: slug}, nil
}

// DeleteCategory executes the configured removal handler.
func (s AdminFacadeStub) DeleteCategory(ctx context.Context, id int64) error {
	if s.DeleteCategoryFn != nil {
		return s.DeleteCategoryFn(ctx, id)
	}
	return nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	LibraryFacadeStub
	PaymentFacadeStub
	AdminFacadeStub
}
