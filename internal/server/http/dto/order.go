package dto

import (
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// CheckoutItemRequest is one requested line at checkout.
type CheckoutItemRequest struct {
	BookID             int64  `json:"bookId"`
	Quantity           int    `json:"quantity"`
	Type               string `json:"type"`
	RentalDurationDays int    `json:"rentalDurationDays"`
}

// CheckoutRequest describes the checkout payload.
type CheckoutRequest struct {
	Items         []CheckoutItemRequest `json:"items"`
	PaymentMethod string                `json:"paymentMethod"`
	Shipping      AddressRequest        `json:"shipping"`
}

// AddressRequest carries shipping details.
type AddressRequest struct {
	Name       string `json:"name"`
	Line       string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email"`
}

// OrderLineResponse is the API view of one order line.
type OrderLineResponse struct {
	BookID             int64      `json:"bookId"`
	Title              string     `json:"title"`
	Author             string     `json:"author,omitempty"`
	Image              string     `json:"image,omitempty"`
	Quantity           int        `json:"quantity"`
	Type               string     `json:"type"`
	Format             string     `json:"bookType"`
	Price              float64    `json:"price"`
	RentalStartAt      *time.Time `json:"rentalStartAt,omitempty"`
	RentalEndAt        *time.Time `json:"rentalEndAt,omitempty"`
	RentalDurationDays int        `json:"rentalDurationDays,omitempty"`
	DeliveryETA        *time.Time `json:"deliveryEta,omitempty"`
	ReturnDueAt        *time.Time `json:"returnDueAt,omitempty"`
}

// OrderResponse is the API view of an order.
type OrderResponse struct {
	ID            int64               `json:"id"`
	Number        string              `json:"number"`
	Status        string              `json:"status"`
	TotalAmount   float64             `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	Lines         []OrderLineResponse `json:"items"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// OrderSummaryResponse aggregates a user's order history.
type OrderSummaryResponse struct {
	TotalOrders int     `json:"totalOrders"`
	TotalAmount float64 `json:"totalAmount"`
	BooksBought int     `json:"booksBought"`
	BooksRented int     `json:"booksRented"`
}

// UpdateOrderStatusRequest carries a back-office status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// NewOrderResponse maps a domain order onto its API view.
func NewOrderResponse(o model.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			BookID:             l.BookID,
			Title:              l.Book.Title,
			Author:             l.Book.Author,
			Image:              l.Book.Image,
			Quantity:           l.Quantity,
			Type:               string(l.Kind),
			Format:             string(l.Format),
			Price:              l.Price,
			RentalStartAt:      l.RentalStartAt,
			RentalEndAt:        l.RentalEndAt,
			RentalDurationDays: l.RentalDurationDays,
			DeliveryETA:        l.DeliveryETA,
			ReturnDueAt:        l.ReturnDueAt,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Lines:         lines,
		CreatedAt:     o.CreatedAt,
	}
}
