package domain

import "time"

// Visit is a single gym attendance interval. A nil LeftAt means the client
// is still inside.
type Visit struct {
	VisitHistoryID int64      `json:"visit_history_id"`
	ClientID       int64      `json:"-"`
	GymID          int64      `json:"gym_id"`
	EnteredAt      time.Time  `json:"entered_at"`
	LeftAt         *time.Time `json:"left_at"`
}

// Open reports whether the visit has no recorded exit.
func (v *Visit) Open() bool {
	return v.LeftAt == nil
}
