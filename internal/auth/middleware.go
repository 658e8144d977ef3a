// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/resume-server/internal/httputil"
)

type userIDKey struct{}

// Middleware returns an http.Handler middleware that requires a valid
// "Authorization: Bearer" token and injects the authenticated user ID into
// the request context. Requests without a token get 401.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httputil.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				httputil.WriteMessage(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID retrieves the authenticated user ID from the context, or "" if the
// request did not pass through Middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
