package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khelmitra/scoreboard/models"
	"github.com/khelmitra/scoreboard/repositories"
)

type fakeTokenRepo struct {
	userByKey map[string]int
}

func (r *fakeTokenRepo) GetOrCreate(ctx context.Context, userID int, candidateKey string) (string, error) {
	return candidateKey, nil
}

func (r *fakeTokenRepo) GetByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	userID, ok := r.userByKey[key]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	return &models.AuthToken{Key: key, UserID: userID}, nil
}

func newAuthTestHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()
	authn := NewAuthenticator(&fakeTokenRepo{userByKey: map[string]int{"good-key": 9}})

	var seenUserID int
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		seenUserID = userID
		w.WriteHeader(http.StatusNoContent)
	})
	return authn.Authenticate(inner), &seenUserID
}

func TestAuthenticateMissingHeader(t *testing.T) {
	handler, seen := newAuthTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Zero(t, *seen)
}

func TestAuthenticateBadScheme(t *testing.T) {
	handler, seen := newAuthTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, *seen)
}

func TestAuthenticateUnknownKey(t *testing.T) {
	handler, seen := newAuthTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token wrong-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, *seen)
}

func TestAuthenticateTokenScheme(t *testing.T) {
	handler, seen := newAuthTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 9, *seen)
}

func TestAuthenticateBearerScheme(t *testing.T) {
	handler, seen := newAuthTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 9, *seen)
}

func TestGetUserIDFromContextMissing(t *testing.T) {
	_, err := GetUserIDFromContext(context.Background())
	assert.Error(t, err)
}
