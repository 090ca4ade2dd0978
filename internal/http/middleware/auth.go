package middleware

import (
	"context"
	"net/http"

	"github.com/ironclub/ironclub-api/internal/httputil"
	"github.com/ironclub/ironclub-api/pkg/domain"
)

type contextKey string

const (
	// ClientKey is the context key for the authenticated client.
	ClientKey contextKey = "client"
	// EmployeeKey is the context key for the authenticated employee role.
	EmployeeKey contextKey = "employee"
	// TokenKey is the context key for the presented bearer token.
	TokenKey contextKey = "token"
)

// Authenticator resolves bearer tokens to accounts via session lookup.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Client, error)
	AuthenticateEmployee(ctx context.Context, token string) (*domain.Client, *domain.Employee, error)
}

// Auth creates middleware that authenticates the bearer token against the
// session store and puts the client into the request context. All failures
// produce the same uniform 401.
func Auth(sessions Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := httputil.BearerToken(r)
			if token == "" {
				httputil.Unauthorized(w)
				return
			}

			client, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				httputil.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ClientKey, client)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin creates middleware that additionally requires an active ADMIN
// employee role. Must run inside Auth.
func Admin(sessions Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := GetToken(r.Context())
			if !ok {
				httputil.Unauthorized(w)
				return
			}

			_, employee, err := sessions.AuthenticateEmployee(r.Context(), token)
			if err != nil || !employee.IsAdmin() {
				httputil.Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), EmployeeKey, employee)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClient extracts the authenticated client from the request context.
func GetClient(ctx context.Context) (*domain.Client, bool) {
	client, ok := ctx.Value(ClientKey).(*domain.Client)
	return client, ok
}

// GetEmployee extracts the authenticated employee from the request context.
func GetEmployee(ctx context.Context) (*domain.Employee, bool) {
	employee, ok := ctx.Value(EmployeeKey).(*domain.Employee)
	return employee, ok
}

// GetToken extracts the presented bearer token from the request context.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
