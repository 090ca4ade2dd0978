package visitgraph

import (
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// Aggregator turns visit intervals into per-day duration totals.
type Aggregator struct {
	// Mode selects the day-count strategy for bucket generation.
	Mode Mode
	// Now is the time source used for visits that are still open;
	// defaults to time.Now.
	Now func() time.Time
}

// New creates an aggregator with the given day-count mode.
func New(mode Mode) *Aggregator {
	return &Aggregator{Mode: mode, Now: time.Now}
}

// Aggregate maps every calendar day in the range to the total milliseconds
// spent across all visits touching that day.
//
// A visit confined to one day contributes its exact duration. A visit
// spanning several days contributes the remainder of the first day, the
// elapsed part of the last day, and a full 24 hours for each day strictly
// between; intermediate days are assumed fully occupied. Open visits are
// measured up to Now, so repeated calls return a growing snapshot.
func (a *Aggregator) Aggregate(visits []domain.Visit, r Range) (map[string]int64, error) {
	result, err := DayBuckets(r, a.Mode, func() int64 { return 0 })
	if err != nil {
		return nil, err
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}

	for _, visit := range visits {
		entered := visit.EnteredAt.UTC()
		left := now().UTC()
		if visit.LeftAt != nil {
			left = visit.LeftAt.UTC()
		}
		if left.Before(entered) {
			continue
		}

		days := dayKeys(Range{Start: entered, End: left}, a.Mode)
		if len(days) == 0 {
			continue
		}

		contributions := make(map[string]int64, len(days))
		for _, key := range days {
			contributions[key] = DayMillis
		}

		if len(days) == 1 {
			contributions[days[0]] = left.Sub(entered).Milliseconds()
		} else {
			// Remainder of the first day, elapsed part of the last.
			contributions[days[0]] = Midnight(entered).AddDate(0, 0, 1).Sub(entered).Milliseconds()
			contributions[days[len(days)-1]] = left.Sub(Midnight(left)).Milliseconds()
		}

		// A visit spilling past the requested range adds its day key
		// to the graph, starting from zero.
		for _, key := range days {
			result[key] += contributions[key]
		}
	}

	return result, nil
}
