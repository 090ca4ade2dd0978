package visitgraph

import (
	"errors"
	"testing"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid", start: "2024-03-01T00:00:00Z", end: "2024-03-02T00:00:00Z"},
		{name: "with offset", start: "2024-03-01T10:00:00+03:00", end: "2024-03-01T12:00:00+03:00"},
		{name: "bad start", start: "yesterday", end: "2024-03-02T00:00:00Z", wantErr: true},
		{name: "bad end", start: "2024-03-01T00:00:00Z", end: "tomorrow", wantErr: true},
		{name: "date only", start: "2024-03-01", end: "2024-03-02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRange(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidRange) {
					t.Errorf("ParseRange() error = %v, want ErrInvalidRange", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseRange() error = %v", err)
			}
		})
	}
}

func TestDayKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-03-01T00:00:00Z", "2024-03-01"},
		{"2024-03-01T23:59:59Z", "2024-03-01"},
		// An offset timestamp keys by its UTC date.
		{"2024-03-01T01:00:00+03:00", "2024-02-29"},
	}

	for _, tt := range tests {
		parsed, err := time.Parse(time.RFC3339, tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := DayKey(parsed); got != tt.want {
			t.Errorf("DayKey(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 42, 9, 123, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}

func TestDayCount(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		mode  Mode
		want  int
	}{
		{name: "same day elapsed", start: "2024-03-01T08:00:00Z", end: "2024-03-01T20:00:00Z", mode: ModeElapsedDays, want: 1},
		{name: "three days elapsed", start: "2024-03-01T23:00:00Z", end: "2024-03-03T01:00:00Z", mode: ModeElapsedDays, want: 3},
		{name: "month boundary elapsed", start: "2024-02-28T12:00:00Z", end: "2024-03-02T12:00:00Z", mode: ModeElapsedDays, want: 4},
		{name: "same day legacy", start: "2024-03-01T08:00:00Z", end: "2024-03-01T20:00:00Z", mode: ModeDayOfMonthDiff, want: 0},
		{name: "three days legacy", start: "2024-03-01T23:00:00Z", end: "2024-03-03T01:00:00Z", mode: ModeDayOfMonthDiff, want: 2},
		{name: "month boundary legacy clamps", start: "2024-02-28T12:00:00Z", end: "2024-03-02T12:00:00Z", mode: ModeDayOfMonthDiff, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.start, tt.end)
			if err != nil {
				t.Fatalf("ParseRange() error = %v", err)
			}
			if got := dayCount(r, tt.mode); got != tt.want {
				t.Errorf("dayCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayBucketsRejectsInvertedRange(t *testing.T) {
	r := Range{
		Start: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := DayBuckets(r, ModeElapsedDays, func() int64 { return 0 }); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("DayBuckets() error = %v, want ErrInvalidRange", err)
	}
}

func TestDayBucketsSeedsIndependentValues(t *testing.T) {
	r := Range{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}

	buckets, err := DayBuckets(r, ModeElapsedDays, func() *int64 { return new(int64) })
	if err != nil {
		t.Fatalf("DayBuckets() error = %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}

	*buckets["2024-03-01"] = 42
	if *buckets["2024-03-02"] != 0 {
		t.Error("buckets share backing state")
	}
}
