package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/khelmitra/scoreboard/repositories"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// Authenticator checks the opaque bearer token of a request against the
// token store and places the owning user's id into the request context.
type Authenticator struct {
	tokenRepo repositories.TokenRepository
}

func NewAuthenticator(tokenRepo repositories.TokenRepository) *Authenticator {
	return &Authenticator{tokenRepo: tokenRepo}
}

// Authenticate rejects requests without a valid token. Both
// "Authorization: Token <key>" and "Authorization: Bearer <key>" are
// accepted.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := extractTokenKey(r)
		if err != nil {
			writeUnauthorized(w, err.Error())
			return
		}

		token, err := a.tokenRepo.GetByKey(r.Context(), key)
		if err != nil {
			if errors.Is(err, repositories.ErrTokenNotFound) {
				writeUnauthorized(w, "invalid authentication token")
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated user's id placed there by
// Authenticate.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	if !ok || userID <= 0 {
		return 0, errors.New("authenticated user not found in context")
	}
	return userID, nil
}

func extractTokenKey(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("authorization header is required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || (parts[0] != "Token" && parts[0] != "Bearer") {
		return "", errors.New("authorization header must be of the form 'Token <key>'")
	}
	key := strings.TrimSpace(parts[1])
	if key == "" {
		return "", errors.New("authorization token is empty")
	}
	return key, nil
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
