package dto

import (
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// LibraryItemResponse is the API view of one digital shelf entry.
type LibraryItemResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	BookID      int64     `json:"bookId"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Image       string    `json:"image,omitempty"`
	Type        string    `json:"type"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	DaysLeft    int       `json:"daysLeft"`
	Expired     bool      `json:"expired"`
	StatusLabel string    `json:"statusLabel"`
	HasContent  bool      `json:"hasContent"`
}

// OpenContentResponse carries the grant returned by the open action.
type OpenContentResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewLibraryItemResponse maps a shelf item onto its API view. The content
// locator itself stays server-side; readers go through the open action.
func NewLibraryItemResponse(item model.LibraryItem) LibraryItemResponse {
	return LibraryItemResponse{
		ID:          item.ID,
		OrderNumber: item.OrderNumber,
		BookID:      item.BookID,
		Title:       item.Title,
		Author:      item.Author,
		Image:       item.Image,
		Type:        string(item.Kind),
		StartAt:     item.Window.Start,
		EndAt:       item.Window.End,
		DaysLeft:    item.DaysLeft,
		Expired:     item.Expired,
		StatusLabel: item.StatusLabel,
		HasContent:  item.PDFURL != "",
	}
}
