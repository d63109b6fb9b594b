package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
)

const bookColumns = `id, title, author, description, category_id, category, format, price, rent_price, image, pdf_url, pdf_data, stock, created_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var format string
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.CategoryID, &b.Category,
		&format, &b.Price, &b.RentPrice, &b.Image, &b.PDFURL, &b.PDFData, &b.Stock, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	b.Format = model.ParseBookFormat(format)
	return &b, nil
}

func (r *bookRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR author ILIKE %s)", arg(pattern), arg(pattern)))
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = "+arg(*filter.CategoryID))
	} else if filter.Category != "" {
		conditions = append(conditions, "category ILIKE "+arg("%"+filter.Category+"%"))
	}
	if filter.Format != "" {
		conditions = append(conditions, "format = "+arg(filter.Format))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.storage.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Sort keys are whitelisted; anything else keeps insertion order.
	orderBy := " ORDER BY id"
	switch filter.Sort {
	case "price":
		orderBy = " ORDER BY price"
	case "title":
		orderBy = " ORDER BY title"
	case "date":
		orderBy = " ORDER BY created_at"
	}
	if filter.Order == "desc" {
		orderBy += " DESC"
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pagination := fmt.Sprintf(" LIMIT %s OFFSET %s", arg(limit), arg((page-1)*limit))

	query := "SELECT " + bookColumns + " FROM books" + where + orderBy + pagination
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []model.Book
	for rows.Next() {
		var b model.Book
		var format string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.CategoryID, &b.Category,
			&format, &b.Price, &b.RentPrice, &b.Image, &b.PDFURL, &b.PDFData, &b.Stock, &b.CreatedAt); err != nil {
			return nil, 0, err
		}
		b.Format = model.ParseBookFormat(format)
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id=$1`
	return scanBook(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	const query = `INSERT INTO books (title, author, description, category_id, category, format, price, rent_price, image, pdf_url, pdf_data, stock)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		book.Title, book.Author, book.Description, book.CategoryID, book.Category, book.Format,
		book.Price, book.RentPrice, book.Image, book.PDFURL, book.PDFData, book.Stock,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *model.Book) (*model.Book, error) {
	const query = `UPDATE books
                   SET title=$1, author=$2, description=$3, category_id=$4, category=$5, format=$6,
                       price=$7, rent_price=$8, image=$9, pdf_url=$10, pdf_data=$11, stock=$12
                   WHERE id=$13
                   RETURNING ` + bookColumns
	return scanBook(r.storage.pool.QueryRow(ctx, query,
		book.Title, book.Author, book.Description, book.CategoryID, book.Category, book.Format,
		book.Price, book.RentPrice, book.Image, book.PDFURL, book.PDFData, book.Stock, book.ID))
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM books WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, name, slug, created_at FROM categories ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *categoryRepository) Create(ctx context.Context, name, slug string) (*model.Category, error) {
	const query = `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id, created_at`
	c := model.Category{Name: name, Slug: slug}
	err := r.storage.pool.QueryRow(ctx, query, name, slug).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, name, slug string) (*model.Category, error) {
	const query = `UPDATE categories SET name=$1, slug=$2 WHERE id=$3 RETURNING id, name, slug, created_at`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, name, slug, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
