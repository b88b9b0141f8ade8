package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodNewCard   PaymentMethod = "new_card"
	PaymentMethodSavedCard PaymentMethod = "saved_card"
)

// DefaultCurrency is applied when a settlement request omits the currency.
const DefaultCurrency = "CNY"

// Payment is one settlement attempt against a rental. Attempts are
// append-only; a rental may accumulate several failed rows before one
// completes.
type Payment struct {
	ID            int32         `json:"id"`
	UserID        int32         `json:"user_id"`
	RentalID      int32         `json:"rental_id"`
	PaymentCardID *int32        `json:"payment_card_id,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	Method        PaymentMethod `json:"payment_method"`
	TransactionID *string       `json:"transaction_id,omitempty"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}
