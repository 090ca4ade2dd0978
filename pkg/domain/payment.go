package domain

import "time"

// Payment is a processed charge against a client's bank card.
type Payment struct {
	PaymentHistoryID int64     `json:"payment_history_id"`
	ClientID         int64     `json:"client_id"`
	BankCardID       int64     `json:"bank_card_id"`
	Value            int64     `json:"value"`
	CreatedAt        time.Time `json:"created_at"`
	ProcessedAt      time.Time `json:"processed_at"`
	Revoked          bool      `json:"revoked"`
}
