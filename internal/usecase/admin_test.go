package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	testhelpers "github.com/ebiblio/storefront/internal/test"
)

func newAdminForTest() (*AdminUseCase, *testhelpers.UserRepositoryStub, *recordingNotifier) {
	users := testhelpers.NewUserRepositoryStub()
	books := &testhelpers.BookRepositoryStub{}
	orders := &testhelpers.OrderRepositoryStub{}
	notifier := &recordingNotifier{}
	return NewAdminUseCase(users, books, orders, testhelpers.HasherStub{}, notifier, discardLogger()), users, notifier
}

func TestAdminUpdateUserRoleWhitelist(t *testing.T) {
	uc, users, _ := newAdminForTest()
	if _, err := users.Create(context.Background(), "user@example.com", "User", "hash", model.RoleCustomer); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := uc.UpdateUserRole(context.Background(), 1, model.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.UpdateUserRole(context.Background(), 1, model.Role("superuser")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown role, got %v", err)
	}
}

func TestAdminDeleteUserRefusesSelf(t *testing.T) {
	uc, users, _ := newAdminForTest()
	if _, err := users.Create(context.Background(), "admin@example.com", "Admin", "hash", model.RoleAdmin); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if err := uc.DeleteUser(context.Background(), 1, 1); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self delete, got %v", err)
	}
}

func TestAdminStatsCountsAtStartOfDay(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{AdminSummaryFn: func(ctx context.Context, startOfDay time.Time) (*model.AdminOrderSummary, error) {
		if startOfDay.Hour() != 0 || startOfDay.Minute() != 0 || startOfDay.Second() != 0 {
			t.Fatalf("expected midnight boundary, got %v", startOfDay)
		}
		return &model.AdminOrderSummary{OrderSummary: model.OrderSummary{TotalOrders: 4}, OrdersToday: 2}, nil
	}}
	uc := NewAdminUseCase(users, &testhelpers.BookRepositoryStub{}, orders, testhelpers.HasherStub{}, &recordingNotifier{}, discardLogger())

	dashboard, err := uc.Stats(context.Background(), time.Date(2025, time.March, 10, 15, 30, 12, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.Summary.OrdersToday != 2 {
		t.Fatalf("unexpected dashboard %+v", dashboard)
	}
}

func TestAdminCreateUserEmailsTemporaryPassword(t *testing.T) {
	uc, users, notifier := newAdminForTest()

	usr, err := uc.CreateUser(context.Background(), "New@Example.com", "New User", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if usr.Email != "new@example.com" {
		t.Fatalf("email not normalized: %q", usr.Email)
	}
	if usr.Role != model.RoleCustomer {
		t.Fatalf("expected customer role by default, got %q", usr.Role)
	}

	if len(notifier.passwords) != 1 {
		t.Fatalf("expected one password email, got %d", len(notifier.passwords))
	}
	password := notifier.passwords[0]
	if !strings.HasPrefix(password, "TMP-") || len(password) != 14 {
		t.Fatalf("unexpected temporary password %q", password)
	}
	for _, r := range password[4:] {
		if !strings.ContainsRune(tempPasswordAlphabet, r) {
			t.Fatalf("password %q uses a glyph outside the alphabet", password)
		}
	}

	stored := users.Users["new@example.com"]
	if stored == nil || stored.PasswordHash != "hash:"+password {
		t.Fatalf("stored hash does not match emailed password")
	}
}

func TestAdminCreateUserValidation(t *testing.T) {
	uc, users, _ := newAdminForTest()
	if _, err := users.Create(context.Background(), "dup@example.com", "Dup", "hash", model.RoleCustomer); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := uc.CreateUser(context.Background(), "", "Blank", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for blank email, got %v", err)
	}
	if _, err := uc.CreateUser(context.Background(), "x@example.com", "X", model.Role("superuser")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for unknown role, got %v", err)
	}
	if _, err := uc.CreateUser(context.Background(), "dup@example.com", "Dup", ""); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAdminCreateUserToleratesMailFailure(t *testing.T) {
	uc, users, notifier := newAdminForTest()
	notifier.err = errors.New("smtp down")

	usr, err := uc.CreateUser(context.Background(), "new@example.com", "New", model.RoleAdmin)
	if err != nil {
		t.Fatalf("mail failure must not fail the creation: %v", err)
	}
	if usr.Role != model.RoleAdmin {
		t.Fatalf("unexpected role %q", usr.Role)
	}
	if users.Users["new@example.com"] == nil {
		t.Fatal("user not persisted")
	}
}

func TestAdminGetUser(t *testing.T) {
	uc, users, _ := newAdminForTest()
	if _, err := users.Create(context.Background(), "user@example.com", "User", "hash", model.RoleCustomer); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	usr, err := uc.GetUser(context.Background(), 1)
	if err != nil || usr.Email != "user@example.com" {
		t.Fatalf("unexpected result %+v %v", usr, err)
	}
	if _, err := uc.GetUser(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
