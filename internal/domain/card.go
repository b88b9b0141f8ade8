package domain

type CardNetwork string

const (
	NetworkVisa       CardNetwork = "Visa"
	NetworkMasterCard CardNetwork = "MasterCard"
	NetworkAmex       CardNetwork = "American Express"
	NetworkDiscover   CardNetwork = "Discover"
	NetworkUnionPay   CardNetwork = "UnionPay"
	NetworkUnknown    CardNetwork = "Unknown"
)

// PaymentCard stores card material at rest. The full number and CVV are kept
// only in encrypted form; the last four digits stay plaintext for display.
// Exactly one card per owner is default whenever the owner has any cards.
type PaymentCard struct {
	ID                  int32       `json:"id"`
	UserID              int32       `json:"user_id"`
	CardHolderName      string      `json:"card_holder_name"`
	CardNumberLast4     string      `json:"card_number_last4"`
	EncryptedCardNumber string      `json:"-"`
	ExpiryMonth         string      `json:"card_expiry_month"`
	ExpiryYear          string      `json:"card_expiry_year"`
	EncryptedCVV        string      `json:"-"`
	CardType            CardNetwork `json:"card_type"`
	IsDefault           bool        `json:"is_default"`
}

// CardInput is the plaintext card material supplied when vaulting a card or
// paying inline with a new card.
type CardInput struct {
	CardHolderName string `json:"card_holder_name"`
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"card_expiry_month"`
	ExpiryYear     string `json:"card_expiry_year"`
	CVV            string `json:"cvv"`
	IsDefault      bool   `json:"is_default"`
}

// CardPatch is a partial update; nil fields are left unchanged.
type CardPatch struct {
	CardHolderName *string `json:"card_holder_name,omitempty"`
	ExpiryMonth    *string `json:"card_expiry_month,omitempty"`
	ExpiryYear     *string `json:"card_expiry_year,omitempty"`
	IsDefault      *bool   `json:"is_default,omitempty"`
}
