package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// PaymentsRepository handles payment history and the transactional
// purchases that produce payment rows.
type PaymentsRepository struct {
	db *sql.DB
}

// NewPaymentsRepository creates a new payments repository.
func NewPaymentsRepository(db *sql.DB) *PaymentsRepository {
	return &PaymentsRepository{db: db}
}

// GetByClientID retrieves the client's payments, newest first.
func (r *PaymentsRepository) GetByClientID(ctx context.Context, clientID int64) ([]*domain.Payment, error) {
	query := `
		SELECT payment_history_id, client_id, bank_card_id, value, created_at, processed_at, revoked
		FROM payment_history
		WHERE client_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		p := &domain.Payment{}
		err := rows.Scan(
			&p.PaymentHistoryID, &p.ClientID, &p.BankCardID, &p.Value,
			&p.CreatedAt, &p.ProcessedAt, &p.Revoked,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SubscribeMembership charges the card and creates the membership in one
// transaction: payment row, membership row, link row.
func (r *PaymentsRepository) SubscribeMembership(ctx context.Context, clientID, bankCardID int64, level domain.LevelType, price int64) (*domain.Membership, error) {
	now := time.Now()
	expiresAt := now.AddDate(0, 0, 30)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var paymentID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO payment_history (client_id, bank_card_id, value, created_at, processed_at, revoked)
		VALUES ($1, $2, $3, $4, $4, FALSE)
		RETURNING payment_history_id
	`, clientID, bankCardID, price, now).Scan(&paymentID)
	if err != nil {
		return nil, err
	}

	membership := &domain.Membership{
		ClientID:  clientID,
		LevelType: level,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO membership (client_id, level_type, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING membership_id
	`, clientID, level, now, expiresAt).Scan(&membership.MembershipID)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO membership_payment_history (client_id, membership_id, payment_history_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, clientID, membership.MembershipID, paymentID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return membership, nil
}

// CreateAppointment charges the card and books the trainer appointment in
// one transaction.
func (r *PaymentsRepository) CreateAppointment(ctx context.Context, clientID, employeeID, gymID, bankCardID int64, appointedAt, endsAt time.Time, price int64) (*domain.Appointment, error) {
	now := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var paymentID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO payment_history (client_id, bank_card_id, value, created_at, processed_at, revoked)
		VALUES ($1, $2, $3, $4, $4, FALSE)
		RETURNING payment_history_id
	`, clientID, bankCardID, price, now).Scan(&paymentID)
	if err != nil {
		return nil, err
	}

	appointment := &domain.Appointment{
		ClientID:         clientID,
		EmployeeID:       employeeID,
		GymID:            gymID,
		PaymentHistoryID: paymentID,
		CreatedAt:        now,
		AppointedAt:      appointedAt,
		EndsAt:           endsAt,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO trainer_appointment (client_id, employee_id, gym_id, payment_history_id, created_at, appointed_at, ends_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)
		RETURNING trainer_appointment_id
	`, clientID, employeeID, gymID, paymentID, now, appointedAt, endsAt).Scan(&appointment.TrainerAppointmentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return appointment, nil
}
