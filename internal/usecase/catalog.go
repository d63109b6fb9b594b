package usecase

import (
	"context"
	"strings"
	"unicode"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/domain/repository"
)

// CatalogUseCase serves the public catalog and its back-office curation.
type CatalogUseCase struct {
	books      repository.BookRepository
	categories repository.CategoryRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(books repository.BookRepository, categories repository.CategoryRepository) *CatalogUseCase {
	return &CatalogUseCase{books: books, categories: categories}
}

// List returns a page of catalog entries plus the total match count.
func (u *CatalogUseCase) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	return u.books.List(ctx, filter)
}

// Get fetches a single catalog entry.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Book, error) {
	return u.books.GetByID(ctx, id)
}

// Categories lists the browsing taxonomy.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.categories.List(ctx)
}

// CreateBook adds a catalog entry.
func (u *CatalogUseCase) CreateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" || book.Price < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.books.Create(ctx, book)
}

// UpdateBook replaces a catalog entry.
func (u *CatalogUseCase) UpdateBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	book.Title = strings.TrimSpace(book.Title)
	if book.Title == "" || book.Price < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.books.Update(ctx, book)
}

// DeleteBook removes a catalog entry.
func (u *CatalogUseCase) DeleteBook(ctx context.Context, id int64) error {
	return u.books.Delete(ctx, id)
}

// CreateCategory adds a taxonomy entry, deriving the slug from the name when
// none is supplied.
func (u *CatalogUseCase) CreateCategory(ctx context.Context, name, slug string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrNotFound
	}
	if slug == "" {
		slug = Slugify(name)
	}
	return u.categories.Create(ctx, name, slug)
}

// UpdateCategory renames a taxonomy entry.
func (u *CatalogUseCase) UpdateCategory(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrNotFound
	}
	if slug == "" {
		slug = Slugify(name)
	}
	return u.categories.Update(ctx, id, name, slug)
}

// DeleteCategory removes a taxonomy entry.
func (u *CatalogUseCase) DeleteCategory(ctx context.Context, id int64) error {
	return u.categories.Delete(ctx, id)
}

// Slugify lowercases a name and collapses anything non-alphanumeric into
// single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
