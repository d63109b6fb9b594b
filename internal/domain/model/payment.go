package model

import "time"

// IntentStatus mirrors the processor's payment intent lifecycle.
type IntentStatus string

const (
	IntentStatusRequiresPayment IntentStatus = "requires_payment_method"
	IntentStatusProcessing      IntentStatus = "processing"
	IntentStatusSucceeded       IntentStatus = "succeeded"
	IntentStatusCanceled        IntentStatus = "canceled"
	IntentStatusFailed          IntentStatus = "failed"
)

// Settled reports whether the processor reached a terminal state.
func (s IntentStatus) Settled() bool {
	return s == IntentStatusSucceeded || s == IntentStatusCanceled || s == IntentStatusFailed
}

// PaymentIntent is the persisted record of a processor charge attempt.
// Amount is kept in cents the way the processor counts.
type PaymentIntent struct {
	ID          int64
	UserID      int64
	OrderID     *int64
	ProviderID  string
	AmountCents int64
	Currency    string
	Status      IntentStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PaymentMethod is a stored card reference. Only presentation fields are
// kept; the PAN never reaches this service.
type PaymentMethod struct {
	ID        int64
	UserID    int64
	Brand     string
	Last4     string
	ExpMonth  int
	ExpYear   int
	Holder    string
	IsDefault bool
	CreatedAt time.Time
}
