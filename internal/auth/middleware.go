package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/audit"
	"github.com/MrJamesThe3rd/dentalbudget/internal/http/respond"
)

type claimsKey struct{}

// ClaimsFrom returns the verified claims of the caller, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// Middleware verifies the bearer token and records the caller as the audit
// actor. A request without a token passes through unless required is set;
// a request with a bad token is always rejected.
func Middleware(tokens *Tokens, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, found := bearer(r)
			if !found {
				if required {
					respond.Error(w, r, apperr.Unauthorized("Not authenticated"))
					return
				}

				next.ServeHTTP(w, r)

				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				respond.Error(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = audit.WithActor(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return h, true
	}

	return strings.TrimSpace(token), true
}
