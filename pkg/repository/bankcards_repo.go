package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// BankCardsRepository handles bank card persistence.
type BankCardsRepository struct {
	db *sql.DB
}

// NewBankCardsRepository creates a new bank cards repository.
func NewBankCardsRepository(db *sql.DB) *BankCardsRepository {
	return &BankCardsRepository{db: db}
}

// Create inserts a new bank card and fills in its generated id.
func (r *BankCardsRepository) Create(ctx context.Context, card *domain.BankCard) error {
	query := `
		INSERT INTO bank_card (client_id, card_number, cardholder_name, expires_at, cvv)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING bank_card_id
	`
	return r.db.QueryRowContext(ctx, query,
		card.ClientID, card.CardNumber, card.CardholderName, card.ExpiresAt, card.CVV,
	).Scan(&card.BankCardID)
}

// GetByID retrieves a bank card by id.
func (r *BankCardsRepository) GetByID(ctx context.Context, bankCardID int64) (*domain.BankCard, error) {
	query := `
		SELECT bank_card_id, client_id, card_number, cardholder_name, expires_at, cvv
		FROM bank_card
		WHERE bank_card_id = $1
	`
	card := &domain.BankCard{}
	err := r.db.QueryRowContext(ctx, query, bankCardID).Scan(
		&card.BankCardID, &card.ClientID, &card.CardNumber,
		&card.CardholderName, &card.ExpiresAt, &card.CVV,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBankCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetByClientID retrieves every card stored by a client.
func (r *BankCardsRepository) GetByClientID(ctx context.Context, clientID int64) ([]*domain.BankCard, error) {
	query := `
		SELECT bank_card_id, client_id, card_number, cardholder_name, expires_at, cvv
		FROM bank_card
		WHERE client_id = $1
		ORDER BY bank_card_id
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.BankCard
	for rows.Next() {
		card := &domain.BankCard{}
		err := rows.Scan(
			&card.BankCardID, &card.ClientID, &card.CardNumber,
			&card.CardholderName, &card.ExpiresAt, &card.CVV,
		)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// Delete removes a bank card.
func (r *BankCardsRepository) Delete(ctx context.Context, bankCardID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM bank_card WHERE bank_card_id = $1`, bankCardID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBankCardNotFound
	}
	return nil
}
