package domain

import "time"

// LevelType is the tier of a membership subscription.
type LevelType string

const (
	LevelSimple   LevelType = "SIMPLE"
	LevelInfinity LevelType = "INFINITY"
	LevelPremium  LevelType = "PREMIUM"
)

// Valid reports whether the level is one of the known tiers.
func (l LevelType) Valid() bool {
	switch l {
	case LevelSimple, LevelInfinity, LevelPremium:
		return true
	}
	return false
}

// ParseLevel converts a wire string into a LevelType.
func ParseLevel(s string) (LevelType, error) {
	level := LevelType(s)
	if !level.Valid() {
		return "", ErrInvalidLevel
	}
	return level, nil
}

// Membership represents a client's subscription. A frozen membership keeps
// its freezed_at timestamp; unfreezing pushes expires_at forward by the
// frozen span.
type Membership struct {
	MembershipID int64      `json:"membership_id"`
	ClientID     int64      `json:"client_id"`
	LevelType    LevelType  `json:"level_type"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at"`
	FrozenAt     *time.Time `json:"freezed_at"`
}

// Active reports whether the membership is unexpired and not frozen.
func (m *Membership) Active(now time.Time) bool {
	return m.FrozenAt == nil && m.ExpiresAt.After(now)
}
