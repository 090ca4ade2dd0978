package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ironclub/ironclub-api/pkg/domain"
)

// TokenClaims is the payload carried by a session token. The display fields
// are denormalized for client convenience and must never drive authorization
// decisions; the subject is the authoritative part.
type TokenClaims struct {
	jwt.RegisteredClaims
	FirstName         string `json:"first_name,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// ClientID parses the claim subject back into a client id.
func (c *TokenClaims) ClientID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

// TokenService issues and verifies compact HS512-signed session tokens.
// It is pure: issuing a token performs no I/O, and signature verification
// needs nothing but the secret. Revocation and expiry enforcement live in
// SessionService, which checks the persisted session record.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given signing secret.
// The secret is loaded once at startup and immutable afterwards.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue signs a token binding the client identity to the given validity
// window. The result is `header.payload.signature`, each segment URL-safe
// base64 without padding, signed with HMAC-SHA512.
func (s *TokenService) Issue(client *domain.Client, issuedAt, expiresAt time.Time) (string, error) {
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(client.ClientID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		FirstName:         client.FirstName,
		ProfilePictureURL: client.ProfilePictureURL,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(s.secret)
}

// VerifySignature checks the token's HMAC signature and validity window
// without consulting the session store. The session lookup remains the
// primary verification path (it is what makes revocation work); this is an
// independently callable tamper check layered in front of it.
func (s *TokenService) VerifySignature(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
