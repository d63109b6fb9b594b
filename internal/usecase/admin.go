package usecase

import (
	"context"
	"crypto/rand"
	"log/slog"
	"time"

	"github.com/ebiblio/storefront/internal/adapter/mailer"
	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/domain/repository"
	pkgAuth "github.com/ebiblio/storefront/internal/pkg/auth"
)

// AdminUseCase serves back-office operations on users and store-wide stats.
type AdminUseCase struct {
	users    repository.UserRepository
	books    repository.BookRepository
	orders   repository.OrderRepository
	hasher   pkgAuth.PasswordHasher
	notifier mailer.Notifier
	logger   *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository, books repository.BookRepository, orders repository.OrderRepository, hasher pkgAuth.PasswordHasher, notifier mailer.Notifier, logger *slog.Logger) *AdminUseCase {
	return &AdminUseCase{users: users, books: books, orders: orders, hasher: hasher, notifier: notifier, logger: logger}
}

// Stats builds the dashboard at the given instant.
func (u *AdminUseCase) Stats(ctx context.Context, now time.Time) (*model.Dashboard, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	summary, err := u.orders.AdminSummary(ctx, startOfDay)
	if err != nil {
		return nil, err
	}

	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}

	_, bookCount, err := u.books.List(ctx, model.BookFilter{Limit: 1})
	if err != nil {
		return nil, err
	}

	return &model.Dashboard{
		Summary:    *summary,
		UserCount:  len(users),
		BookCount:  bookCount,
		OrderCount: summary.TotalOrders,
	}, nil
}

// ListUsers returns every registered account.
func (u *AdminUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	return u.users.List(ctx)
}

// GetUser fetches one account.
func (u *AdminUseCase) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// No 0/O, 1/l or I; the password is retyped from an email.
const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func temporaryPassword() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = tempPasswordAlphabet[int(b)%len(tempPasswordAlphabet)]
	}
	return "TMP-" + string(out), nil
}

// CreateUser opens an account on a customer's behalf. The generated password
// is emailed to the new user and never returned to the caller.
func (u *AdminUseCase) CreateUser(ctx context.Context, email, name string, role model.Role) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}
	if role == "" {
		role = model.RoleCustomer
	}
	if role != model.RoleCustomer && role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}

	password, err := temporaryPassword()
	if err != nil {
		return nil, err
	}
	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, email, name, hash, role)
	if err != nil {
		return nil, err
	}

	if err := u.notifier.SendTemporaryPassword(ctx, usr.Email, password); err != nil {
		u.logger.Error("temporary password delivery failed",
			slog.String("to", usr.Email), slog.Any("error", err))
	}
	return usr, nil
}

// UpdateUserRole promotes or demotes an account.
func (u *AdminUseCase) UpdateUserRole(ctx context.Context, id int64, role model.Role) error {
	if role != model.RoleCustomer && role != model.RoleAdmin {
		return domainErrors.ErrForbidden
	}
	return u.users.UpdateRole(ctx, id, role)
}

// DeleteUser removes an account. An administrator cannot delete itself.
func (u *AdminUseCase) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domainErrors.ErrForbidden
	}
	return u.users.Delete(ctx, id)
}
