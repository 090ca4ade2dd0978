// Package visitgraph aggregates gym visit intervals into per-calendar-day
// duration buckets for reporting.
package visitgraph

import (
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

// DayMillis is one full calendar day in milliseconds.
const DayMillis = int64(24 * time.Hour / time.Millisecond)

// Mode selects how the number of days spanned by a range is computed.
type Mode int

const (
	// ModeElapsedDays counts whole calendar days between the range
	// endpoints, inclusive of both.
	ModeElapsedDays Mode = iota
	// ModeDayOfMonthDiff subtracts day-of-month fields, reproducing the
	// legacy reporting behavior. It undercounts by one and breaks across
	// month boundaries; kept only for exact parity with old reports.
	ModeDayOfMonthDiff
)

// Range is an inclusive pair of timestamps.
type Range struct {
	Start time.Time
	End   time.Time
}

// ParseRange parses two ISO-8601 timestamps into a Range.
func ParseRange(start, end string) (Range, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return Range{}, domain.ErrInvalidRange
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return Range{}, domain.ErrInvalidRange
	}
	return Range{Start: s, End: e}, nil
}

// DayKey truncates a timestamp to its UTC date portion, YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Midnight returns calendar midnight of the timestamp's day, in the
// timestamp's own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayCount computes how many day buckets the range spans under the given
// mode. ModeDayOfMonthDiff may legitimately return zero (same-day ranges)
// and is clamped at zero across month boundaries.
func dayCount(r Range, mode Mode) int {
	if mode == ModeDayOfMonthDiff {
		n := r.End.Day() - r.Start.Day()
		if n < 0 {
			return 0
		}
		return n
	}

	start := Midnight(r.Start.UTC())
	end := Midnight(r.End.UTC())
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// dayKeys returns the ordered day keys the range spans under the given mode,
// stepping one calendar day at a time from the start.
func dayKeys(r Range, mode Mode) []string {
	n := dayCount(r, mode)
	if n <= 0 {
		return nil
	}

	keys := make([]string, 0, n)
	day := Midnight(r.Start.UTC())
	for i := 0; i < n; i++ {
		keys = append(keys, DayKey(day))
		day = day.AddDate(0, 0, 1)
	}
	return keys
}

// DayBuckets builds a mapping with one entry per day the range spans, each
// seeded with an independent value from initial. Rejects ranges whose end
// precedes their start.
func DayBuckets[V any](r Range, mode Mode, initial func() V) (map[string]V, error) {
	if r.End.Before(r.Start) {
		return nil, domain.ErrInvalidRange
	}

	buckets := make(map[string]V)
	for _, key := range dayKeys(r, mode) {
		buckets[key] = initial()
	}
	return buckets, nil
}
