package repository

import (
	"context"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// BookRepository persists catalog entries.
type BookRepository interface {
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	Create(ctx context.Context, book *model.Book) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository persists the browsing taxonomy.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, name, slug string) (*model.Category, error)
	Update(ctx context.Context, id int64, name, slug string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}
