package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"dalla-server/src/apperr"
	"dalla-server/src/auth"
	"dalla-server/src/db"
	"dalla-server/src/logger"

	"github.com/google/uuid"
)

// TokenVerifier validates a bearer token and returns its verified claims.
// A nil verifier means the identity provider is not configured.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

type contextKey string

const (
	userIDKey contextKey = "user_id"
	claimsKey contextKey = "claims"
)

// UserID returns the authenticated user's internal id set by RequireUser.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}

// TokenClaims returns the verified claims set by RequireToken or RequireUser.
func TokenClaims(ctx context.Context) auth.Claims {
	claims, _ := ctx.Value(claimsKey).(auth.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func verifyRequest(verifier TokenVerifier, w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing authorization token", http.StatusUnauthorized)
		return auth.Claims{}, false
	}

	if verifier == nil {
		http.Error(w, "auth not configured", http.StatusServiceUnavailable)
		return auth.Claims{}, false
	}

	claims, err := verifier.Verify(r.Context(), token)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn().Err(err).Msg("token verification failed")
		if errors.Is(err, apperr.ErrUnavailable) {
			http.Error(w, "auth unavailable", http.StatusServiceUnavailable)
		} else {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		}
		return auth.Claims{}, false
	}
	return claims, true
}

// RequireToken verifies the bearer token without requiring a user record.
// Only the identity upsert endpoint uses it.
func RequireToken(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(verifier, w, r)
			if !ok {
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser verifies the bearer token and resolves it to an existing user
// record. An unknown subject gets a 404 pointing at the upsert endpoint.
func RequireUser(verifier TokenVerifier, store db.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(verifier, w, r)
			if !ok {
				return
			}

			s := db.RequestStore(r.Context(), store)
			user, err := s.GetUserBySub(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					http.Error(w, "user not found; call PUT /users/me to register", http.StatusNotFound)
					return
				}
				log := logger.FromContext(r.Context())
				log.Error().Err(err).Msg("user lookup failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
