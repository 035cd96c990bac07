package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/handler/http/response"
)

// RequireRole lets through only callers whose identity has one of roles.
func RequireRole(roles ...identity.Role) func(http.Handler) http.Handler {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.FromContext(r.Context())
			if !ok {
				response.HandleError(w, identity.ErrMissingIdentity)
				return
			}

			if _, ok := allowed[id.Role]; !ok {
				response.HandleError(w, identity.ErrInvalidRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
