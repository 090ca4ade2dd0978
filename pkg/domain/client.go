package domain

import "time"

// Client represents a registered gym client.
type Client struct {
	ClientID          int64     `json:"client_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Patronymic        *string   `json:"patronymic,omitempty"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	EmailAddress      string    `json:"email_address"`
	PhoneNumber       string    `json:"phone_number"`
	PasswordHash      string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}
