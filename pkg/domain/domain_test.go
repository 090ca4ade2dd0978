package domain

import (
	"errors"
	"testing"
	"time"
)

func TestSessionUsable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{name: "live", session: Session{ExpiresAt: now.Add(time.Hour)}, want: true},
		{name: "revoked", session: Session{Revoked: true, ExpiresAt: now.Add(time.Hour)}, want: false},
		{name: "expired", session: Session{ExpiresAt: now.Add(-time.Minute)}, want: false},
		{name: "revoked and expired", session: Session{Revoked: true, ExpiresAt: now.Add(-time.Minute)}, want: false},
		{name: "expires exactly now", session: Session{ExpiresAt: now}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Usable(now); got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMembershipActive(t *testing.T) {
	now := time.Now()
	frozen := now.Add(-time.Hour)

	tests := []struct {
		name       string
		membership Membership
		want       bool
	}{
		{name: "live", membership: Membership{ExpiresAt: now.Add(time.Hour)}, want: true},
		{name: "expired", membership: Membership{ExpiresAt: now.Add(-time.Hour)}, want: false},
		{name: "frozen", membership: Membership{ExpiresAt: now.Add(time.Hour), FrozenAt: &frozen}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.membership.Active(now); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"SIMPLE", "INFINITY", "PREMIUM"} {
		level, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%s) error = %v", s, err)
		}
		if string(level) != s {
			t.Errorf("ParseLevel(%s) = %s", s, level)
		}
	}
	if _, err := ParseLevel("GOLD"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("ParseLevel(GOLD) error = %v, want ErrInvalidLevel", err)
	}
}

func TestEmployeeIsAdmin(t *testing.T) {
	left := time.Now()

	tests := []struct {
		name     string
		employee Employee
		want     bool
	}{
		{name: "active admin", employee: Employee{EmployeeType: EmployeeAdmin}, want: true},
		{name: "trainer", employee: Employee{EmployeeType: EmployeeTrainer}, want: false},
		{name: "fired admin", employee: Employee{EmployeeType: EmployeeAdmin, LeftAt: &left}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.employee.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmployeeTypeValid(t *testing.T) {
	for _, role := range []EmployeeType{EmployeeAdmin, EmployeeInstructor, EmployeeTrainer} {
		if !role.Valid() {
			t.Errorf("Valid(%s) = false", role)
		}
	}
	if EmployeeType("JANITOR").Valid() {
		t.Error("Valid(JANITOR) = true")
	}
}

func TestVisitOpen(t *testing.T) {
	left := time.Now()
	open := Visit{}
	closed := Visit{LeftAt: &left}

	if !open.Open() {
		t.Error("Open() = false for a visit without an exit")
	}
	if closed.Open() {
		t.Error("Open() = true for a closed visit")
	}
}
