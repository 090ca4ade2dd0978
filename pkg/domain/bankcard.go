package domain

// BankCard represents a stored payment card.
type BankCard struct {
	BankCardID     int64  `json:"bank_card_id"`
	ClientID       int64  `json:"client_id"`
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiresAt      string `json:"expires_at"`
	CVV            string `json:"-"`
}
