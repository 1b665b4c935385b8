package services_test

import (
	"context"
	"testing"
	"time"

	"kickstore/internal/repositories"
	"kickstore/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "admin-1",
		"username": "admin",
		"exp":      exp.Unix(),
	})
	s, err := token.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return s
}

func TestSessionService_SetAuthAndLogout(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMockStateRepository()
	session := services.NewSessionService(ctx, storage)
	assert.False(t, session.IsAuthenticated())

	session.SetAuth(ctx, "opaque-token", "admin")
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "opaque-token", session.Token())

	restored := services.NewSessionService(ctx, storage)
	assert.Equal(t, "admin", restored.State().Username)

	restored.Logout(ctx)
	assert.False(t, restored.IsAuthenticated())
	_, err := storage.Load(ctx, services.AuthNamespace)
	assert.ErrorIs(t, err, repositories.ErrStateNotFound)

	// Logging out twice is harmless.
	restored.Logout(ctx)
}

func TestSessionService_ExpiredJWT(t *testing.T) {
	ctx := context.Background()
	session := services.NewSessionService(ctx, repositories.NewMockStateRepository())

	session.SetAuth(ctx, signedToken(t, time.Now().Add(time.Hour)), "admin")
	assert.True(t, session.IsAuthenticated())

	session.SetAuth(ctx, signedToken(t, time.Now().Add(-time.Hour)), "admin")
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token())
}

func TestSessionService_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	storage := repositories.NewMockStateRepository()
	require.NoError(t, storage.Save(ctx, services.AuthNamespace, []byte(`{"token":`)))

	session := services.NewSessionService(ctx, storage)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.State().Username)
}
