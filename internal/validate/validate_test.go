package validate

import (
	"strings"
	"testing"
)

type sample struct {
	EmailAddress string `json:"email_address" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Level        string `json:"level,omitempty" validate:"omitempty,oneof=SIMPLE INFINITY PREMIUM"`
}

func TestStructValid(t *testing.T) {
	err := Struct(sample{EmailAddress: "ivan@example.com", Password: "longenough", Level: "SIMPLE"})
	if err != nil {
		t.Errorf("Struct() error = %v, want nil", err)
	}
}

func TestStructMessages(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		want []string
	}{
		{
			name: "missing fields",
			in:   sample{},
			want: []string{"email_address is required", "password is required"},
		},
		{
			name: "bad email",
			in:   sample{EmailAddress: "not-an-email", Password: "longenough"},
			want: []string{"email_address must be a valid email address"},
		},
		{
			name: "short password",
			in:   sample{EmailAddress: "ivan@example.com", Password: "short"},
			want: []string{"password must be at least 8 characters long"},
		},
		{
			name: "bad enum",
			in:   sample{EmailAddress: "ivan@example.com", Password: "longenough", Level: "GOLD"},
			want: []string{"level must be one of: SIMPLE INFINITY PREMIUM"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if err == nil {
				t.Fatal("Struct() error = nil, want error")
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not contain %q", err.Error(), want)
				}
			}
		})
	}
}
