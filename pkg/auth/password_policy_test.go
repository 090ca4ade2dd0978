package auth

import (
	"testing"

	"github.com/ironclub/ironclub-api/internal/config"
)

func TestPasswordPolicyValidate(t *testing.T) {
	tests := []struct {
		name     string
		policy   PasswordPolicy
		password string
		wantErr  bool
	}{
		{name: "no requirements", policy: PasswordPolicy{}, password: "a", wantErr: false},
		{name: "long enough", policy: PasswordPolicy{MinLength: 8}, password: "12345678", wantErr: false},
		{name: "too short", policy: PasswordPolicy{MinLength: 8}, password: "1234567", wantErr: true},
		{name: "has uppercase", policy: PasswordPolicy{RequireUppercase: true}, password: "Password", wantErr: false},
		{name: "missing uppercase", policy: PasswordPolicy{RequireUppercase: true}, password: "password", wantErr: true},
		{name: "has lowercase", policy: PasswordPolicy{RequireLowercase: true}, password: "PASSWORd", wantErr: false},
		{name: "missing lowercase", policy: PasswordPolicy{RequireLowercase: true}, password: "PASSWORD", wantErr: true},
		{name: "has number", policy: PasswordPolicy{RequireNumber: true}, password: "password1", wantErr: false},
		{name: "missing number", policy: PasswordPolicy{RequireNumber: true}, password: "password", wantErr: true},
		{name: "has special", policy: PasswordPolicy{RequireSpecial: true}, password: "password!", wantErr: false},
		{name: "missing special", policy: PasswordPolicy{RequireSpecial: true}, password: "password1", wantErr: true},
		{
			name:     "everything required",
			policy:   PasswordPolicy{MinLength: 8, RequireUppercase: true, RequireLowercase: true, RequireNumber: true, RequireSpecial: true},
			password: "Passw0rd!",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestNewPasswordPolicy(t *testing.T) {
	policy := NewPasswordPolicy(config.PasswordPolicyConfig{MinLength: 12, RequireNumber: true})

	if policy.MinLength != 12 || !policy.RequireNumber {
		t.Errorf("policy = %+v, want MinLength 12 and RequireNumber", policy)
	}
	if policy.RequireUppercase || policy.RequireLowercase || policy.RequireSpecial {
		t.Errorf("policy = %+v, unset requirements should stay false", policy)
	}
}
