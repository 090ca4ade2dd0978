package domain

import "time"

// EmployeeType is the role of a gym employee.
type EmployeeType string

const (
	EmployeeAdmin      EmployeeType = "ADMIN"
	EmployeeInstructor EmployeeType = "INSTRUCTOR"
	EmployeeTrainer    EmployeeType = "TRAINER"
)

// Valid reports whether the role is one of the known employee types.
func (e EmployeeType) Valid() bool {
	switch e {
	case EmployeeAdmin, EmployeeInstructor, EmployeeTrainer:
		return true
	}
	return false
}

// Employee links a client account to a staff role. Firing an employee sets
// left_at instead of deleting the row.
type Employee struct {
	EmployeeID   int64        `json:"employee_id"`
	ClientID     int64        `json:"client_id"`
	EmployeeType EmployeeType `json:"employee_type"`
	HiredAt      time.Time    `json:"hired_at"`
	LeftAt       *time.Time   `json:"left_at,omitempty"`
}

// IsAdmin reports whether the employee holds an active admin role.
func (e *Employee) IsAdmin() bool {
	return e.EmployeeType == EmployeeAdmin && e.LeftAt == nil
}

// EmployeeProfile is an employee row joined with its client account,
// password hash omitted.
type EmployeeProfile struct {
	Employee
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Patronymic        *string   `json:"patronymic,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	EmailAddress      string    `json:"email_address"`
	PhoneNumber       string    `json:"phone_number"`
	ClientCreatedAt   time.Time `json:"created_at"`
}
