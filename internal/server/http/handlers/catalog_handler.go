package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/server/http/dto"
)

// CatalogHandler serves public browsing endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /api/books.
func (h *CatalogHandler) List(c *gin.Context) {
	filter := model.BookFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Format:   c.Query("bookType"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			filter.CategoryID = &id
		}
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	books, total, err := h.facade.Books(c.Request.Context(), filter)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := dto.BookListResponse{Books: make([]dto.BookResponse, 0, len(books)), Total: total, Page: filter.Page}
	for _, b := range books {
		resp.Books = append(resp.Books, dto.NewBookResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/books/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	book, err := h.facade.Book(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewBookResponse(*book))
}

// Categories handles GET /api/books/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, dto.CategoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}
	c.JSON(http.StatusOK, resp)
}
