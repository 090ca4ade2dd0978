package middleware

import "net/http"

// RequestSizeLimit caps the request body size. Reads past the cap fail
// inside the handler's decoder, which surfaces as a bad-request error.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}
