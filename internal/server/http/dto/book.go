package dto

import (
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// BookResponse is the public view of a catalog entry. The raw PDF payload is
// never exposed through listing endpoints.
type BookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	CategoryID  *int64    `json:"categoryId,omitempty"`
	Category    string    `json:"category,omitempty"`
	Format      string    `json:"bookType"`
	Price       float64   `json:"price"`
	RentPrice   *float64  `json:"rentPrice,omitempty"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BookListResponse wraps a catalog page with its total match count.
type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
}

// BookRequest carries admin catalog edits.
type BookRequest struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	CategoryID  *int64   `json:"categoryId"`
	Format      string   `json:"bookType"`
	Price       float64  `json:"price"`
	RentPrice   *float64 `json:"rentPrice"`
	Image       string   `json:"image"`
	PDFURL      string   `json:"pdfUrl"`
	PDFData     string   `json:"pdfBase64"`
	Stock       int      `json:"stock"`
}

// CategoryResponse is the public view of a taxonomy entry.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryRequest carries admin taxonomy edits.
type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewBookResponse maps a domain book onto its API view.
func NewBookResponse(b model.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CategoryID:  b.CategoryID,
		Category:    b.Category,
		Format:      string(b.Format),
		Price:       b.Price,
		RentPrice:   b.RentPrice,
		Image:       b.Image,
		Stock:       b.Stock,
		CreatedAt:   b.CreatedAt,
	}
}

// ToModel converts the request into a domain book.
func (r BookRequest) ToModel(id int64) *model.Book {
	return &model.Book{
		ID:          id,
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Format:      model.ParseBookFormat(r.Format),
		Price:       r.Price,
		RentPrice:   r.RentPrice,
		Image:       r.Image,
		PDFURL:      r.PDFURL,
		PDFData:     r.PDFData,
		Stock:       r.Stock,
	}
}
