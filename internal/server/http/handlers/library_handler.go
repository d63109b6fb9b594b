package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/server/http/dto"
)

// LibraryHandler serves the digital shelf and its gated open action.
type LibraryHandler struct {
	facade LibraryFacade
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(facade LibraryFacade) *LibraryHandler {
	return &LibraryHandler{facade: facade}
}

// List handles GET /api/user/library. Expiry is recomputed on every call.
func (h *LibraryHandler) List(c *gin.Context) {
	items, err := h.facade.Shelf(c.Request.Context(), CurrentUserID(c), time.Now())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.LibraryItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, dto.NewLibraryItemResponse(item))
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, resp)
}

// Open handles POST /api/user/library/:id/open.
func (h *LibraryHandler) Open(c *gin.Context) {
	grant, err := h.facade.OpenItem(c.Request.Context(), CurrentUserID(c), c.Param("id"), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAccessExpired):
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès expiré"})
		case errors.Is(err, domainErrors.ErrContentUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Contenu indisponible"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.OpenContentResponse{
		ID:        grant.ItemID,
		URL:       grant.URL,
		Token:     grant.Token,
		ExpiresAt: grant.ExpiresAt,
	})
}
