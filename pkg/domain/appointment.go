package domain

import "time"

// Appointment is a paid personal-training booking with an employee.
type Appointment struct {
	TrainerAppointmentID int64     `json:"trainer_appointment_id"`
	ClientID             int64     `json:"client_id"`
	EmployeeID           int64     `json:"employee_id"`
	GymID                int64     `json:"gym_id"`
	PaymentHistoryID     int64     `json:"payment_history_id"`
	CreatedAt            time.Time `json:"created_at"`
	AppointedAt          time.Time `json:"appointed_at"`
	EndsAt               time.Time `json:"ends_at"`
	Revoked              bool      `json:"revoked"`
}

// AppointmentDetails is an appointment joined with the counterparty's client
// account (the trainer when queried by a client, the client when queried by
// an employee).
type AppointmentDetails struct {
	Appointment
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	Patronymic        *string `json:"patronymic,omitempty"`
	ProfilePictureURL string  `json:"profile_picture_url"`
	PhoneNumber       string  `json:"phone_number"`
}
