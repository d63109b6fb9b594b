package model

import (
	"strings"
	"time"
)

// LineKind is the normalized classification of an order line. The free-text
// `type` stored by older backends ("achat", "location", "rent", ...) is
// parsed exactly once at the boundary; everything downstream branches on this
// enum only.
type LineKind string

const (
	LineKindPurchase LineKind = "purchase"
	LineKindRental   LineKind = "rental"
)

// ParseLineKind maps legacy type strings onto LineKind. A value containing
// "loc" (location) or equal to "rent" is a rental; everything else,
// including the empty string, is a purchase.
func ParseLineKind(raw string) LineKind {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "rent" || strings.Contains(normalized, "loc") {
		return LineKindRental
	}
	return LineKindPurchase
}

// IsRental reports whether the kind grants time-boxed access.
func (k LineKind) IsRental() bool { return k == LineKindRental }

// OrderStatus describes fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// BookRef is the denormalized book snapshot embedded in an order line.
type BookRef struct {
	Title  string
	Author string
	Image  string
	PDFURL string
}

// OrderLine is one purchased or rented unit within an order. BookID zero
// marks legacy lines recorded before catalog references were kept.
type OrderLine struct {
	ID                 int64
	BookID             int64
	Quantity           int
	Kind               LineKind
	Format             BookFormat
	Price              float64
	RentalStartAt      *time.Time
	RentalEndAt        *time.Time
	RentalDurationDays int
	DeliveryETA        *time.Time
	ReturnDueAt        *time.Time
	PDFURL             string
	Book               BookRef
}

// Address holds checkout shipping details.
type Address struct {
	Name       string
	Line       string
	City       string
	PostalCode string
	Country    string
	Email      string
}

// Order is an immutable record of a past purchase.
type Order struct {
	ID            int64
	UserID        int64
	Number        string
	CustomerEmail string
	Lines         []OrderLine
	TotalAmount   float64
	Status        OrderStatus
	PaymentMethod string
	Shipping      Address
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderSummary aggregates a user's order history.
type OrderSummary struct {
	TotalOrders int
	TotalAmount float64
	BooksBought int
	BooksRented int
}

// AdminOrderSummary extends OrderSummary with same-day figures for the
// back-office dashboard.
type AdminOrderSummary struct {
	OrderSummary
	OrdersToday int
	AmountToday float64
}

// CheckoutItem is one requested line before catalog enrichment.
type CheckoutItem struct {
	BookID             int64
	Quantity           int
	Type               string
	RentalDurationDays int
}

// CheckoutDraft carries everything the customer submits at checkout.
type CheckoutDraft struct {
	Items         []CheckoutItem
	PaymentMethod string
	Shipping      Address
}

// Dashboard aggregates the figures shown on the back-office landing page.
type Dashboard struct {
	Summary    AdminOrderSummary
	UserCount  int
	BookCount  int
	OrderCount int
}
