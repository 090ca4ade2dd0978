package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionStore persists session records.
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Revoke(ctx context.Context, sessionID int64) error
	RevokeAllByClientID(ctx context.Context, clientID int64) error
}

// ClientStore resolves client accounts for authenticated sessions.
type ClientStore interface {
	GetByID(ctx context.Context, clientID int64) (*domain.Client, error)
}

// EmployeeStore resolves staff roles for admin authorization.
type EmployeeStore interface {
	GetActiveByClientID(ctx context.Context, clientID int64) (*domain.Employee, error)
}

// SessionConfig holds session service configuration.
type SessionConfig struct {
	SessionTTL time.Duration
	// VerifySignature enables an independent HMAC check of the presented
	// token before the session lookup. The lookup alone is sufficient for
	// correctness (only issued tokens exist in the store); the extra check
	// rejects tampered tokens without a database round trip.
	VerifySignature bool
	// Now is the time source; defaults to time.Now.
	Now func() time.Time
}

// SessionService issues, authenticates and revokes sessions.
//
// Verification is lookup-based: the presented token string is matched
// against the persisted session record and rejected when missing, revoked
// or expired. All failure modes collapse to ErrUnauthorized so callers
// cannot distinguish a malformed token from a revoked or expired one.
type SessionService struct {
	config    SessionConfig
	tokens    *TokenService
	sessions  SessionStore
	clients   ClientStore
	employees EmployeeStore
}

// NewSessionService creates a session service.
func NewSessionService(config SessionConfig, tokens *TokenService, sessions SessionStore, clients ClientStore, employees EmployeeStore) *SessionService {
	if config.SessionTTL == 0 {
		config.SessionTTL = DefaultSessionTTL
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &SessionService{
		config:    config,
		tokens:    tokens,
		sessions:  sessions,
		clients:   clients,
		employees: employees,
	}
}

// IssueSession signs a token for the client and persists the matching
// session record carrying the same token string and expiry.
func (s *SessionService) IssueSession(ctx context.Context, client *domain.Client) (*domain.Session, error) {
	now := s.config.Now()
	expiresAt := now.Add(s.config.SessionTTL)

	token, err := s.tokens.Issue(client, now, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ClientID:  client.ClientID,
		Token:     token,
		Revoked:   false,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Authenticate resolves a bearer token to its client account. Any failure,
// whether a bad signature, an unknown token, a revoked session or an
// expired one, is reported uniformly as ErrUnauthorized.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*domain.Client, error) {
	session, err := s.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.GetByID(ctx, session.ClientID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return client, nil
}

// AuthenticateEmployee resolves a bearer token to a client holding an
// active employee role.
func (s *SessionService) AuthenticateEmployee(ctx context.Context, token string) (*domain.Client, *domain.Employee, error) {
	session, err := s.lookup(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	client, err := s.clients.GetByID(ctx, session.ClientID)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	employee, err := s.employees.GetActiveByClientID(ctx, session.ClientID)
	if err != nil {
		return nil, nil, domain.ErrUnauthorized
	}
	return client, employee, nil
}

// RevokeByToken marks the session carrying the token as revoked. The record
// is kept for audit; it only stops authenticating.
func (s *SessionService) RevokeByToken(ctx context.Context, token string) error {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	return s.sessions.Revoke(ctx, session.SessionID)
}

// RevokeAll revokes every active session of the client, signing it out on
// every device at once.
func (s *SessionService) RevokeAll(ctx context.Context, clientID int64) error {
	return s.sessions.RevokeAllByClientID(ctx, clientID)
}

// VerifySignature exposes the standalone tamper check of the underlying
// token service.
func (s *SessionService) VerifySignature(token string) (*TokenClaims, error) {
	return s.tokens.VerifySignature(token)
}

func (s *SessionService) lookup(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	if s.config.VerifySignature {
		if _, err := s.tokens.VerifySignature(token); err != nil {
			return nil, domain.ErrUnauthorized
		}
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !session.Usable(s.config.Now()) {
		return nil, domain.ErrUnauthorized
	}
	return session, nil
}
