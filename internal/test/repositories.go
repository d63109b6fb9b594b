package test

import (
	"context"
	"time"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	StatsCalls []model.UserStats
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored users.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	return users, nil
}

// UpdateProfile rewrites name and email of a stored user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, name, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.Users, user.Email)
	user.Name, user.Email = name, email
	s.Users[email] = user
	return user, nil
}

// UpdatePassword replaces the stored hash.
func (s *UserRepositoryStub) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// UpdateRole replaces the stored role.
func (s *UserRepositoryStub) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Role = role
	return nil
}

// AddStats records the increments applied to a user.
func (s *UserRepositoryStub) AddStats(ctx context.Context, id int64, delta model.UserStats) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Stats.Orders += delta.Orders
	user.Stats.TotalSpent += delta.TotalSpent
	user.Stats.BooksBought += delta.BooksBought
	user.Stats.BooksRented += delta.BooksRented
	s.StatsCalls = append(s.StatsCalls, delta)
	return nil
}

// Delete removes a stored user.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Users, user.Email)
	delete(s.ByID, id)
	return nil
}

// BookRepositoryStub allows tests to customize catalog behaviour.
type BookRepositoryStub struct {
	ListFn    func(context.Context, model.BookFilter) ([]model.Book, int, error)
	GetByIDFn func(context.Context, int64) (*model.Book, error)
	CreateFn  func(context.Context, *model.Book) (*model.Book, error)
	UpdateFn  func(context.Context, *model.Book) (*model.Book, error)
	DeleteFn  func(context.Context, int64) error

	Books map[int64]*model.Book
}

// List returns configured books.
func (s *BookRepositoryStub) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	books := make([]model.Book, 0, len(s.Books))
	for _, b := range s.Books {
		books = append(books, *b)
	}
	return books, len(books), nil
}

// GetByID returns matched book either via override or stored map.
func (s *BookRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if book, ok := s.Books[id]; ok {
		return book, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Create delegates to the override or stores the book.
func (s *BookRepositoryStub) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, book)
	}
	if s.Books == nil {
		s.Books = make(map[int64]*model.Book)
	}
	book.ID = int64(len(s.Books) + 1)
	s.Books[book.ID] = book
	return book, nil
}

// Update delegates to the override or rewrites the stored book.
func (s *BookRepositoryStub) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, book)
	}
	if _, ok := s.Books[book.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.Books[book.ID] = book
	return book, nil
}

// Delete removes the stored book.
func (s *BookRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	if _, ok := s.Books[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Books, id)
	return nil
}

// CategoryRepositoryStub keeps the taxonomy in a slice.
type CategoryRepositoryStub struct {
	Categories []model.Category
	Err        error
}

// List returns configured categories.
func (s *CategoryRepositoryStub) List(ctx context.Context) ([]model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Categories, nil
}

// Create appends a category.
func (s *CategoryRepositoryStub) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	cat := model.Category{ID: int64(len(s.Categories) + 1), Name: name, Slug: slug}
	s.Categories = append(s.Categories, cat)
	return &cat, nil
}

// Update rewrites a category in place.
func (s *CategoryRepositoryStub) Update(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories[i].Name, s.Categories[i].Slug = name, slug
			return &s.Categories[i], nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Delete removes a category.
func (s *CategoryRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			s.Categories = append(s.Categories[:i], s.Categories[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// OrderUpdateCall records one status transition for assertions.
type OrderUpdateCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByUserFn   func(context.Context, int64) ([]model.Order, error)
	ListAllFn      func(context.Context) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error
	SummaryFn      func(context.Context, int64) (*model.OrderSummary, error)
	AdminSummaryFn func(context.Context, time.Time) (*model.AdminOrderSummary, error)

	Orders      []model.Order
	UpdateCalls []OrderUpdateCall
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	order.ID = int64(len(s.Orders) + 1)
	s.Orders = append(s.Orders, *order)
	return order, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	out := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// ListAll returns every stored order.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx)
	}
	return s.Orders, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderUpdateCall{OrderID: orderID, Status: status})
	return nil
}

// Summary returns configured aggregates.
func (s *OrderRepositoryStub) Summary(ctx context.Context, userID int64) (*model.OrderSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, userID)
	}
	return &model.OrderSummary{}, nil
}

// AdminSummary returns configured store-wide aggregates.
func (s *OrderRepositoryStub) AdminSummary(ctx context.Context, startOfDay time.Time) (*model.AdminOrderSummary, error) {
	if s.AdminSummaryFn != nil {
		return s.AdminSummaryFn(ctx, startOfDay)
	}
	return &model.AdminOrderSummary{}, nil
}

// IntentUpdateCall records one intent status transition for assertions.
type IntentUpdateCall struct {
	IntentID int64
	Status   model.IntentStatus
}

// PaymentRepositoryStub allows tests to customize behaviour.
type PaymentRepositoryStub struct {
	CreateMethodFn     func(context.Context, *model.PaymentMethod) (*model.PaymentMethod, error)
	CreateIntentFn     func(context.Context, *model.PaymentIntent) (*model.PaymentIntent, error)
	SelectPendingFn    func(context.Context, int) ([]model.PaymentIntent, error)
	UpdateIntentStatFn func(context.Context, int64, model.IntentStatus) error

	Methods     []model.PaymentMethod
	Intents     []model.PaymentIntent
	IntentCalls []IntentUpdateCall
	Err         error
}

// CreateMethod stores a card reference.
func (s *PaymentRepositoryStub) CreateMethod(ctx context.Context, method *model.PaymentMethod) (*model.PaymentMethod, error) {
	if s.CreateMethodFn != nil {
		return s.CreateMethodFn(ctx, method)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	method.ID = int64(len(s.Methods) + 1)
	s.Methods = append(s.Methods, *method)
	return method, nil
}

// ListMethods returns stored cards for the user.
func (s *PaymentRepositoryStub) ListMethods(ctx context.Context, userID int64) ([]model.PaymentMethod, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.PaymentMethod, 0, len(s.Methods))
	for _, m := range s.Methods {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// SetDefaultMethod marks one card default, clearing the rest.
func (s *PaymentRepositoryStub) SetDefaultMethod(ctx context.Context, userID, methodID int64) (*model.PaymentMethod, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var found *model.PaymentMethod
	for i := range s.Methods {
		if s.Methods[i].UserID != userID {
			continue
		}
		s.Methods[i].IsDefault = s.Methods[i].ID == methodID
		if s.Methods[i].IsDefault {
			found = &s.Methods[i]
		}
	}
	if found == nil {
		return nil, domainErrors.ErrNotFound
	}
	return found, nil
}

// DeleteMethod removes one stored card.
func (s *PaymentRepositoryStub) DeleteMethod(ctx context.Context, userID, methodID int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Methods {
		if s.Methods[i].UserID == userID && s.Methods[i].ID == methodID {
			s.Methods = append(s.Methods[:i], s.Methods[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// DeleteMethods removes every card of the user.
func (s *PaymentRepositoryStub) DeleteMethods(ctx context.Context, userID int64) error {
	if s.Err != nil {
		return s.Err
	}
	kept := s.Methods[:0]
	for _, m := range s.Methods {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	s.Methods = kept
	return nil
}

// CreateIntent stores a charge attempt.
func (s *PaymentRepositoryStub) CreateIntent(ctx context.Context, intent *model.PaymentIntent) (*model.PaymentIntent, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, intent)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	intent.ID = int64(len(s.Intents) + 1)
	s.Intents = append(s.Intents, *intent)
	return intent, nil
}

// ListIntentsByUser returns stored intents for the user.
func (s *PaymentRepositoryStub) ListIntentsByUser(ctx context.Context, userID int64) ([]model.PaymentIntent, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.PaymentIntent, 0, len(s.Intents))
	for _, in := range s.Intents {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

// SelectPendingIntents returns unsettled intents.
func (s *PaymentRepositoryStub) SelectPendingIntents(ctx context.Context, limit int) ([]model.PaymentIntent, error) {
	if s.SelectPendingFn != nil {
		return s.SelectPendingFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.PaymentIntent, 0)
	for _, in := range s.Intents {
		if !in.Status.Settled() && len(out) < limit {
			out = append(out, in)
		}
	}
	return out, nil
}

// UpdateIntentStatus records status transitions.
func (s *PaymentRepositoryStub) UpdateIntentStatus(ctx context.Context, intentID int64, status model.IntentStatus) error {
	if s.UpdateIntentStatFn != nil {
		return s.UpdateIntentStatFn(ctx, intentID, status)
	}
	if s.Err != nil {
		return s.Err
	}
	s.IntentCalls = append(s.IntentCalls, IntentUpdateCall{IntentID: intentID, Status: status})
	return nil
}
