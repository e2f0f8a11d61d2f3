package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashique01/dhaka2070/internal/metrics"
)

// Middleware returns an HTTP middleware that rejects requests without a valid
// bearer token. On success the admin claims are injected into the request context.
func Middleware(issuer *TokenIssuer, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				logger.Debug("request missing bearer token", "path", r.URL.Path)
				metrics.RecordAuthFailure("missing_token")
				writeUnauthorized(w, "authentication required")
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				logger.Debug("token validation failed", "path", r.URL.Path, "error", err)
				metrics.RecordAuthFailure("invalid_token")
				writeUnauthorized(w, "authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
