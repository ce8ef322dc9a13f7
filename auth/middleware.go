package auth

import (
	"net/http"
	"strings"

	"github.com/sintocheck/sintocheck-api/httpx"
	"github.com/sintocheck/sintocheck-api/internal/apperr"
)

// HeaderName carries the session token.
const HeaderName = "Authorization"

// TokenFromRequest returns the token in the Authorization header. Both the
// raw token and the "Bearer <token>" form are accepted.
func TokenFromRequest(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get(HeaderName))
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		v = strings.TrimSpace(v[7:])
	}
	return v
}

// RequireToken verifies the session token before anything else looks at the
// request. It never reads the path or body.
func RequireToken(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.Verify(TokenFromRequest(r))
			if err != nil {
				httpx.Error(w, r, apperr.AuthenticationFailed())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
