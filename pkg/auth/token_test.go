package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ironclub/ironclub-api/pkg/domain"
)

var testClient = &domain.Client{
	ClientID:          42,
	FirstName:         "Ivan",
	ProfilePictureURL: "https://cdn.example.com/ivan.png",
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	now := time.Now().Truncate(time.Second)
	token, err := svc.Issue(testClient, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	claims, err := svc.VerifySignature(token)
	if err != nil {
		t.Fatalf("VerifySignature() error = %v", err)
	}

	id, err := claims.ClientID()
	if err != nil {
		t.Fatalf("ClientID() error = %v", err)
	}
	if id != testClient.ClientID {
		t.Errorf("client id = %d, want %d", id, testClient.ClientID)
	}
	if claims.FirstName != testClient.FirstName {
		t.Errorf("first name = %q, want %q", claims.FirstName, testClient.FirstName)
	}
	if claims.ProfilePictureURL != testClient.ProfilePictureURL {
		t.Errorf("profile picture = %q, want %q", claims.ProfilePictureURL, testClient.ProfilePictureURL)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(time.Hour)) {
		t.Errorf("expires at = %v, want %v", claims.ExpiresAt.Time, now.Add(time.Hour))
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	now := time.Now()
	token, err := svc.Issue(testClient, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(token, ".")
	// Re-sign nothing; just swap the payload for a different one.
	other, err := svc.Issue(&domain.Client{ClientID: 7}, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	tampered := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	if _, err := svc.VerifySignature(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("VerifySignature() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService([]byte("secret-a"))
	verifier := NewTokenService([]byte("secret-b"))

	now := time.Now()
	token, err := issuer.Issue(testClient, now, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.VerifySignature(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("VerifySignature() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	issued := time.Now().Add(-2 * time.Hour)
	token, err := svc.Issue(testClient, issued, issued.Add(time.Hour))
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.VerifySignature(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("VerifySignature() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService([]byte("test-secret"))

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.VerifySignature(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("VerifySignature(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestClientIDRejectsNonNumericSubject(t *testing.T) {
	claims := &TokenClaims{}
	claims.Subject = "abc"
	if _, err := claims.ClientID(); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("ClientID() error = %v, want ErrInvalidToken", err)
	}
}
