package auth

import (
	"context"
	"net/http"

	"eventhub/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// Middleware rejects requests without a verifiable bearer token and stores
// the decoded claims in the request context.
func Middleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := ExtractTokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				utils.WriteMessage(w, http.StatusUnauthorized, false, "Authentication required")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				utils.WriteMessage(w, http.StatusUnauthorized, false, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by Middleware, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey).(*Claims); ok {
		return c
	}
	return nil
}
