package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// EmployeesRepository handles employee persistence.
type EmployeesRepository struct {
	db *sql.DB
}

// NewEmployeesRepository creates a new employees repository.
func NewEmployeesRepository(db *sql.DB) *EmployeesRepository {
	return &EmployeesRepository{db: db}
}

// Create promotes a client to an employee role, hired now.
func (r *EmployeesRepository) Create(ctx context.Context, employee *domain.Employee) error {
	employee.HiredAt = time.Now()
	query := `
		INSERT INTO employee (client_id, employee_type, hired_at, left_at)
		VALUES ($1, $2, $3, $4)
		RETURNING employee_id
	`
	return r.db.QueryRowContext(ctx, query,
		employee.ClientID, employee.EmployeeType, employee.HiredAt, employee.LeftAt,
	).Scan(&employee.EmployeeID)
}

// GetByID retrieves an employee by id.
func (r *EmployeesRepository) GetByID(ctx context.Context, employeeID int64) (*domain.Employee, error) {
	query := `
		SELECT employee_id, client_id, employee_type, hired_at, left_at
		FROM employee
		WHERE employee_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, employeeID))
}

// GetActiveByClientID retrieves the client's current employee role, if any.
func (r *EmployeesRepository) GetActiveByClientID(ctx context.Context, clientID int64) (*domain.Employee, error) {
	query := `
		SELECT employee_id, client_id, employee_type, hired_at, left_at
		FROM employee
		WHERE client_id = $1 AND left_at IS NULL
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
}

// GetExpanded retrieves every employee joined with their client account.
func (r *EmployeesRepository) GetExpanded(ctx context.Context) ([]*domain.EmployeeProfile, error) {
	query := `
		SELECT e.employee_id, e.client_id, e.employee_type, e.hired_at, e.left_at,
		       c.first_name, c.last_name, c.patronymic, c.profile_picture_url,
		       c.email_address, c.phone_number, c.created_at
		FROM employee e
		INNER JOIN client c ON c.client_id = e.client_id
		ORDER BY e.employee_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.EmployeeProfile
	for rows.Next() {
		p := &domain.EmployeeProfile{}
		err := rows.Scan(
			&p.EmployeeID, &p.ClientID, &p.EmployeeType, &p.HiredAt, &p.LeftAt,
			&p.FirstName, &p.LastName, &p.Patronymic, &p.ProfilePictureURL,
			&p.EmailAddress, &p.PhoneNumber, &p.ClientCreatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Fire marks the employee as having left; the row is kept.
func (r *EmployeesRepository) Fire(ctx context.Context, employeeID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE employee SET left_at = NOW() WHERE employee_id = $1 AND left_at IS NULL`,
		employeeID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeesRepository) scanOne(row *sql.Row) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := row.Scan(&e.EmployeeID, &e.ClientID, &e.EmployeeType, &e.HiredAt, &e.LeftAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
