package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// AppointmentsRepository handles trainer appointment persistence.
type AppointmentsRepository struct {
	db *sql.DB
}

// NewAppointmentsRepository creates a new appointments repository.
func NewAppointmentsRepository(db *sql.DB) *AppointmentsRepository {
	return &AppointmentsRepository{db: db}
}

const appointmentColumns = `trainer_appointment_id, client_id, employee_id, gym_id, payment_history_id, created_at, appointed_at, ends_at, revoked`

// GetByID retrieves an appointment by id.
func (r *AppointmentsRepository) GetByID(ctx context.Context, appointmentID int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM trainer_appointment WHERE trainer_appointment_id = $1`
	a := &domain.Appointment{}
	err := r.db.QueryRowContext(ctx, query, appointmentID).Scan(
		&a.TrainerAppointmentID, &a.ClientID, &a.EmployeeID, &a.GymID,
		&a.PaymentHistoryID, &a.CreatedAt, &a.AppointedAt, &a.EndsAt, &a.Revoked,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByClientID retrieves a client's appointments within the range, joined
// with the trainer's account details.
func (r *AppointmentsRepository) GetByClientID(ctx context.Context, clientID int64, from, to time.Time) ([]*domain.AppointmentDetails, error) {
	query := `
		SELECT ` + prefixedAppointmentColumns + `,
		       c.first_name, c.last_name, c.patronymic, c.profile_picture_url, c.phone_number
		FROM trainer_appointment t
		INNER JOIN employee e ON e.employee_id = t.employee_id
		INNER JOIN client c ON c.client_id = e.client_id
		WHERE t.client_id = $1 AND t.appointed_at >= $2 AND t.appointed_at <= $3
		ORDER BY t.appointed_at
	`
	return r.queryDetails(ctx, query, clientID, from, to)
}

// GetByEmployeeID retrieves an employee's appointments within the range,
// joined with the booking client's account details.
func (r *AppointmentsRepository) GetByEmployeeID(ctx context.Context, employeeID int64, from, to time.Time) ([]*domain.AppointmentDetails, error) {
	query := `
		SELECT ` + prefixedAppointmentColumns + `,
		       c.first_name, c.last_name, c.patronymic, c.profile_picture_url, c.phone_number
		FROM trainer_appointment t
		INNER JOIN client c ON c.client_id = t.client_id
		WHERE t.employee_id = $1 AND t.appointed_at >= $2 AND t.appointed_at <= $3
		ORDER BY t.appointed_at
	`
	return r.queryDetails(ctx, query, employeeID, from, to)
}

// Revoke cancels a future appointment. Past or already revoked appointments
// stay untouched and report ErrAppointmentNotFound.
func (r *AppointmentsRepository) Revoke(ctx context.Context, appointmentID int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE trainer_appointment
		SET revoked = TRUE
		WHERE trainer_appointment_id = $1 AND revoked = FALSE AND appointed_at > NOW()
	`, appointmentID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

const prefixedAppointmentColumns = `t.trainer_appointment_id, t.client_id, t.employee_id, t.gym_id, t.payment_history_id, t.created_at, t.appointed_at, t.ends_at, t.revoked`

func (r *AppointmentsRepository) queryDetails(ctx context.Context, query string, args ...any) ([]*domain.AppointmentDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*domain.AppointmentDetails
	for rows.Next() {
		d := &domain.AppointmentDetails{}
		err := rows.Scan(
			&d.TrainerAppointmentID, &d.ClientID, &d.EmployeeID, &d.GymID,
			&d.PaymentHistoryID, &d.CreatedAt, &d.AppointedAt, &d.EndsAt, &d.Revoked,
			&d.FirstName, &d.LastName, &d.Patronymic, &d.ProfilePictureURL, &d.PhoneNumber,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
