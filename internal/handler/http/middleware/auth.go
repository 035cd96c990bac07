package middleware

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Cookies set by the web UI.
const (
	EmployerIDCookie = "employer_id"
)

// RoleTokenCookies are checked in order when no Authorization header is sent.
var RoleTokenCookies = []string{"jobseeker_token", "student_token", "employer_token"}

// TokenFromRequest returns the bearer token from the header, falling back to
// the role cookies.
func TokenFromRequest(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	for _, name := range RoleTokenCookies {
		if c, err := r.Cookie(name); err == nil && strings.TrimSpace(c.Value) != "" {
			return c.Value
		}
	}
	return ""
}

// Verifier verifies the request token wherever it was sent.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, TokenFromRequest)
}

// AuthRequired rejects requests without a valid access token and stores the
// caller's identity in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, identity.ErrMissingIdentity)
				return
			}

			if tokenType, ok := claims["type"].(string); ok && tokenType != jwt.TokenTypeAccess {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			id := jwt.IdentityFromClaims(claims)
			if err := id.Require(); err != nil {
				response.HandleError(w, err)
				return
			}
			id.Token = TokenFromRequest(r)
			if c, err := r.Cookie(EmployerIDCookie); err == nil {
				id.EmployerID = strings.TrimSpace(c.Value)
			}

			next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
		}
		return http.HandlerFunc(hfn)
	}
}
