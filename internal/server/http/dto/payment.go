package dto

import (
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// CreateIntentRequest describes a charge attempt payload.
type CreateIntentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	OrderID     *int64  `json:"orderId"`
}

// IntentResponse is the API view of a charge attempt.
type IntentResponse struct {
	ID           int64     `json:"id"`
	ClientSecret string    `json:"clientSecret,omitempty"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PaymentMethodRequest carries a stored card registration.
type PaymentMethodRequest struct {
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"expMonth"`
	ExpYear   int    `json:"expYear"`
	Holder    string `json:"holder"`
	IsDefault bool   `json:"isDefault"`
}

// PaymentMethodResponse is the API view of a stored card.
type PaymentMethodResponse struct {
	ID        int64  `json:"id"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"expMonth"`
	ExpYear   int    `json:"expYear"`
	Holder    string `json:"holder,omitempty"`
	IsDefault bool   `json:"isDefault"`
}

// NewIntentResponse maps a stored intent onto its API view.
func NewIntentResponse(intent model.PaymentIntent, clientSecret string) IntentResponse {
	return IntentResponse{
		ID:           intent.ID,
		ClientSecret: clientSecret,
		Amount:       float64(intent.AmountCents) / 100,
		Currency:     intent.Currency,
		Status:       string(intent.Status),
		Description:  intent.Description,
		CreatedAt:    intent.CreatedAt,
	}
}

// NewPaymentMethodResponse maps a stored card onto its API view.
func NewPaymentMethodResponse(m model.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		ID:        m.ID,
		Brand:     m.Brand,
		Last4:     m.Last4,
		ExpMonth:  m.ExpMonth,
		ExpYear:   m.ExpYear,
		Holder:    m.Holder,
		IsDefault: m.IsDefault,
	}
}
