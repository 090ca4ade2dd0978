package pricing

import (
	"testing"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

func TestMembershipPrices(t *testing.T) {
	tests := []struct {
		level domain.LevelType
		want  int64
	}{
		{domain.LevelSimple, 790},
		{domain.LevelInfinity, 1490},
		{domain.LevelPremium, 1790},
	}

	for _, tt := range tests {
		if got := MembershipPrices[tt.level]; got != tt.want {
			t.Errorf("MembershipPrices[%s] = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestAppointmentPrice(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		duration time.Duration
		want     int64
	}{
		{name: "one hour", duration: time.Hour, want: 1000},
		{name: "two hours", duration: 2 * time.Hour, want: 2000},
		{name: "ninety minutes", duration: 90 * time.Minute, want: 1500},
		{name: "half hour floors to minimum", duration: 30 * time.Minute, want: 1000},
		{name: "five minutes floors to minimum", duration: 5 * time.Minute, want: 1000},
		{name: "zero floors to minimum", duration: 0, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AppointmentPrice(start, start.Add(tt.duration)); got != tt.want {
				t.Errorf("AppointmentPrice(%v) = %d, want %d", tt.duration, got, tt.want)
			}
		})
	}
}
