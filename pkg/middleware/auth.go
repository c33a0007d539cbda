package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "github.com/askhatb/challenge-on/pkg/jwt"
	"github.com/askhatb/challenge-on/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware verifies the bearer session token and attaches the decoded
// claims to the request context. No protected handler runs without it.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Log.WithField("path", r.URL.Path).Warn("Missing Authorization header")
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Log.WithField("path", r.URL.Path).Warn("Malformed Authorization header")
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := jwtutil.ParseToken(parts[1], secret)
			if err != nil {
				logger.Log.WithError(err).WithField("path", r.URL.Path).Warn("Session token rejected")
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the claims attached by AuthMiddleware, or nil.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, ok := ctx.Value(userContextKey).(*jwtutil.Claims)
	if !ok {
		return nil
	}
	return claims
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
