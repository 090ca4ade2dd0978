package visitgraph

import (
	"errors"
	"testing"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func tsPtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed := ts(t, value)
	return &parsed
}

func TestAggregateEmptyVisits(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-03T12:00:00Z")}

	graph, err := a.Aggregate(nil, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	want := []string{"2024-03-01", "2024-03-02", "2024-03-03"}
	if len(graph) != len(want) {
		t.Fatalf("got %d buckets, want %d: %v", len(graph), len(want), graph)
	}
	for _, key := range want {
		total, ok := graph[key]
		if !ok {
			t.Errorf("missing bucket %s", key)
		}
		if total != 0 {
			t.Errorf("bucket %s = %d, want 0", key, total)
		}
	}
}

func TestAggregateSingleDayVisit(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-01T23:59:59Z")}

	visits := []domain.Visit{{
		EnteredAt: ts(t, "2024-03-01T10:00:00Z"),
		LeftAt:    tsPtr(t, "2024-03-01T12:00:00Z"),
	}}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if got := graph["2024-03-01"]; got != 2*60*60*1000 {
		t.Errorf("bucket = %d, want %d", got, 2*60*60*1000)
	}
}

func TestAggregateMidnightSpan(t *testing.T) {
	// 23:00 to 01:00 the next day splits into exactly one hour per day.
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-02T23:59:59Z")}

	visits := []domain.Visit{{
		EnteredAt: ts(t, "2024-03-01T23:00:00Z"),
		LeftAt:    tsPtr(t, "2024-03-02T01:00:00Z"),
	}}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	hour := int64(60 * 60 * 1000)
	if got := graph["2024-03-01"]; got != hour {
		t.Errorf("first day = %d, want %d", got, hour)
	}
	if got := graph["2024-03-02"]; got != hour {
		t.Errorf("second day = %d, want %d", got, hour)
	}
}

func TestAggregateIntermediateDaysFull(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-04T23:59:59Z")}

	visits := []domain.Visit{{
		EnteredAt: ts(t, "2024-03-01T18:00:00Z"),
		LeftAt:    tsPtr(t, "2024-03-04T06:00:00Z"),
	}}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	hour := int64(60 * 60 * 1000)
	cases := map[string]int64{
		"2024-03-01": 6 * hour,
		"2024-03-02": DayMillis,
		"2024-03-03": DayMillis,
		"2024-03-04": 6 * hour,
	}
	for key, want := range cases {
		if got := graph[key]; got != want {
			t.Errorf("bucket %s = %d, want %d", key, got, want)
		}
	}
}

func TestAggregateMultipleVisitsAccumulate(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-01T23:59:59Z")}

	visits := []domain.Visit{
		{EnteredAt: ts(t, "2024-03-01T08:00:00Z"), LeftAt: tsPtr(t, "2024-03-01T09:00:00Z")},
		{EnteredAt: ts(t, "2024-03-01T18:00:00Z"), LeftAt: tsPtr(t, "2024-03-01T19:30:00Z")},
	}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	want := int64(2*60+30) * 60 * 1000
	if got := graph["2024-03-01"]; got != want {
		t.Errorf("bucket = %d, want %d", got, want)
	}
}

func TestAggregateOpenVisitGrows(t *testing.T) {
	// An open visit is measured up to the injected clock, so a later
	// snapshot reports at least as much time as an earlier one.
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-01T23:59:59Z")}
	visits := []domain.Visit{{EnteredAt: ts(t, "2024-03-01T10:00:00Z")}}

	a.Now = func() time.Time { return ts(t, "2024-03-01T11:00:00Z") }
	first, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	a.Now = func() time.Time { return ts(t, "2024-03-01T12:30:00Z") }
	second, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if first["2024-03-01"] != 60*60*1000 {
		t.Errorf("first snapshot = %d, want %d", first["2024-03-01"], 60*60*1000)
	}
	if second["2024-03-01"] <= first["2024-03-01"] {
		t.Errorf("second snapshot %d not greater than first %d", second["2024-03-01"], first["2024-03-01"])
	}
}

func TestAggregateVisitSpillsPastRange(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-01T23:59:59Z")}

	visits := []domain.Visit{{
		EnteredAt: ts(t, "2024-03-01T22:00:00Z"),
		LeftAt:    tsPtr(t, "2024-03-02T02:00:00Z"),
	}}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(graph) != 2 {
		t.Fatalf("got %d buckets, want 2: %v", len(graph), graph)
	}
	if got := graph["2024-03-01"]; got != 2*60*60*1000 {
		t.Errorf("graph[2024-03-01] = %d, want %d", got, 2*60*60*1000)
	}
	// The day past the range end starts at zero and still receives
	// the visit's tail.
	got, ok := graph["2024-03-02"]
	if !ok {
		t.Fatal("graph[2024-03-02] missing, want present")
	}
	if got != 2*60*60*1000 {
		t.Errorf("graph[2024-03-02] = %d, want %d", got, 2*60*60*1000)
	}
}

func TestAggregateInvertedRangeRejected(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-02T00:00:00Z"), End: ts(t, "2024-03-01T00:00:00Z")}

	if _, err := a.Aggregate(nil, r); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("Aggregate() error = %v, want ErrInvalidRange", err)
	}
}

func TestAggregateExitBeforeEntrySkipped(t *testing.T) {
	a := New(ModeElapsedDays)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-01T23:59:59Z")}

	visits := []domain.Visit{{
		EnteredAt: ts(t, "2024-03-01T12:00:00Z"),
		LeftAt:    tsPtr(t, "2024-03-01T10:00:00Z"),
	}}

	graph, err := a.Aggregate(visits, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if got := graph["2024-03-01"]; got != 0 {
		t.Errorf("bucket = %d, want 0", got)
	}
}

func TestAggregateDayOfMonthMode(t *testing.T) {
	// The legacy mode drops the final day of the range.
	a := New(ModeDayOfMonthDiff)
	r := Range{Start: ts(t, "2024-03-01T00:00:00Z"), End: ts(t, "2024-03-03T12:00:00Z")}

	graph, err := a.Aggregate(nil, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(graph) != 2 {
		t.Fatalf("got %d buckets, want 2: %v", len(graph), graph)
	}
	for _, key := range []string{"2024-03-01", "2024-03-02"} {
		if _, ok := graph[key]; !ok {
			t.Errorf("missing bucket %s", key)
		}
	}
}

func TestAggregateDayOfMonthModeSameDayEmpty(t *testing.T) {
	a := New(ModeDayOfMonthDiff)
	r := Range{Start: ts(t, "2024-03-01T08:00:00Z"), End: ts(t, "2024-03-01T20:00:00Z")}

	graph, err := a.Aggregate(nil, r)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(graph) != 0 {
		t.Errorf("got %d buckets, want 0: %v", len(graph), graph)
	}
}
