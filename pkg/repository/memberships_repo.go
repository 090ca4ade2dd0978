package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// MembershipsRepository handles membership persistence.
type MembershipsRepository struct {
	db *sql.DB
}

// NewMembershipsRepository creates a new memberships repository.
func NewMembershipsRepository(db *sql.DB) *MembershipsRepository {
	return &MembershipsRepository{db: db}
}

const membershipColumns = `membership_id, client_id, level_type, created_at, expires_at, freezed_at`

// GetByID retrieves a membership by id.
func (r *MembershipsRepository) GetByID(ctx context.Context, membershipID int64) (*domain.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM membership WHERE membership_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, membershipID))
}

// GetAny retrieves the client's unexpired membership, frozen or not.
func (r *MembershipsRepository) GetAny(ctx context.Context, clientID int64) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM membership
		WHERE client_id = $1 AND expires_at >= NOW()
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
}

// GetActive retrieves the client's unexpired, unfrozen membership.
func (r *MembershipsRepository) GetActive(ctx context.Context, clientID int64) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM membership
		WHERE client_id = $1 AND expires_at >= NOW() AND freezed_at IS NULL
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, clientID))
}

// Freeze stamps the membership as frozen and returns the updated row.
func (r *MembershipsRepository) Freeze(ctx context.Context, membershipID int64) (*domain.Membership, error) {
	query := `
		UPDATE membership
		SET freezed_at = NOW()
		WHERE membership_id = $1
		RETURNING ` + membershipColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, membershipID))
}

// Unfreeze clears the freeze and pushes the expiry forward by the time the
// membership spent frozen.
func (r *MembershipsRepository) Unfreeze(ctx context.Context, membership *domain.Membership) (*domain.Membership, error) {
	if membership.FrozenAt == nil {
		return nil, domain.ErrMembershipNotFrozen
	}

	newExpiresAt := membership.ExpiresAt.Add(time.Since(*membership.FrozenAt))
	query := `
		UPDATE membership
		SET freezed_at = NULL, expires_at = $2
		WHERE membership_id = $1
		RETURNING ` + membershipColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, membership.MembershipID, newExpiresAt))
}

// Revoke expires the membership immediately.
func (r *MembershipsRepository) Revoke(ctx context.Context, membershipID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE membership SET expires_at = NOW(), freezed_at = NULL WHERE membership_id = $1`,
		membershipID)
	return err
}

func (r *MembershipsRepository) scanOne(row *sql.Row) (*domain.Membership, error) {
	m := &domain.Membership{}
	err := row.Scan(&m.MembershipID, &m.ClientID, &m.LevelType, &m.CreatedAt, &m.ExpiresAt, &m.FrozenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
