package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// ClientsRepository handles client persistence.
type ClientsRepository struct {
	db *sql.DB
}

// NewClientsRepository creates a new clients repository.
func NewClientsRepository(db *sql.DB) *ClientsRepository {
	return &ClientsRepository{db: db}
}

// Create inserts a new client and fills in its generated id.
func (r *ClientsRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO client (first_name, last_name, patronymic, profile_picture_url, email_address, phone_number, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING client_id
	`
	err := r.db.QueryRowContext(ctx, query,
		client.FirstName, client.LastName, client.Patronymic, client.ProfilePictureURL,
		client.EmailAddress, client.PhoneNumber, client.PasswordHash, client.CreatedAt,
	).Scan(&client.ClientID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrClientExists
	}
	return err
}

// GetByID retrieves a client by id.
func (r *ClientsRepository) GetByID(ctx context.Context, clientID int64) (*domain.Client, error) {
	query := `
		SELECT client_id, first_name, last_name, patronymic, profile_picture_url, email_address, phone_number, password_hash, created_at
		FROM client
		WHERE client_id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
}

// GetByEmail retrieves a client by email address.
func (r *ClientsRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	query := `
		SELECT client_id, first_name, last_name, patronymic, profile_picture_url, email_address, phone_number, password_hash, created_at
		FROM client
		WHERE email_address = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetAll retrieves every registered client.
func (r *ClientsRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT client_id, first_name, last_name, patronymic, profile_picture_url, email_address, phone_number, password_hash, created_at
		FROM client
		ORDER BY client_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client := &domain.Client{}
		err := rows.Scan(
			&client.ClientID, &client.FirstName, &client.LastName, &client.Patronymic,
			&client.ProfilePictureURL, &client.EmailAddress, &client.PhoneNumber,
			&client.PasswordHash, &client.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

// ExistsByEmail checks whether a client with the email is registered.
func (r *ClientsRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM client WHERE email_address = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *ClientsRepository) scanOne(row *sql.Row) (*domain.Client, error) {
	client := &domain.Client{}
	err := row.Scan(
		&client.ClientID, &client.FirstName, &client.LastName, &client.Patronymic,
		&client.ProfilePictureURL, &client.EmailAddress, &client.PhoneNumber,
		&client.PasswordHash, &client.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
