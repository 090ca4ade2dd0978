package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// SessionsRepository handles session persistence. Sessions are revoked, not
// deleted; the row stays as an audit record.
type SessionsRepository struct {
	db *sql.DB
}

// NewSessionsRepository creates a new sessions repository.
func NewSessionsRepository(db *sql.DB) *SessionsRepository {
	return &SessionsRepository{db: db}
}

// Create inserts a new session and fills in its generated id.
func (r *SessionsRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO session (client_id, jwt, revoked, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING session_id
	`
	return r.db.QueryRowContext(ctx, query,
		session.ClientID, session.Token, session.Revoked, session.CreatedAt, session.ExpiresAt,
	).Scan(&session.SessionID)
}

// GetByToken retrieves a session by its exact token string.
func (r *SessionsRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT session_id, client_id, jwt, revoked, created_at, expires_at
		FROM session
		WHERE jwt = $1
	`
	session := &domain.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.SessionID, &session.ClientID, &session.Token,
		&session.Revoked, &session.CreatedAt, &session.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Revoke marks a session as revoked.
func (r *SessionsRepository) Revoke(ctx context.Context, sessionID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE session SET revoked = TRUE WHERE session_id = $1`, sessionID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// RevokeAllByClientID revokes every active session of a client.
func (r *SessionsRepository) RevokeAllByClientID(ctx context.Context, clientID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE session SET revoked = TRUE WHERE client_id = $1 AND revoked = FALSE`, clientID)
	return err
}
