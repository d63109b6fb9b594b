package repository

import (
	"context"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// UserRepository persists storefront accounts.
type UserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string, role model.Role) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	AddStats(ctx context.Context, id int64, delta model.UserStats) error
	Delete(ctx context.Context, id int64) error
}
