package domain

import "time"

// Session represents a persisted authentication session. The token itself is
// a signed credential; the row is the revocation and audit record for it.
type Session struct {
	SessionID int64     `json:"session_id"`
	ClientID  int64     `json:"-"`
	Token     string    `json:"jwt"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Usable reports whether the session can still authenticate requests at the
// given instant: not revoked and not past its expiry.
func (s *Session) Usable(now time.Time) bool {
	if s.Revoked {
		return false
	}
	return now.Before(s.ExpiresAt)
}
