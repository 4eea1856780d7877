package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filesolved/pkg/apperror"
)

func setupAuthService(t *testing.T, username, password string) *AuthServiceImpl {
	t.Helper()
	hashSvc := NewArgon2HashService()
	hash, err := hashSvc.Hash(password)
	require.NoError(t, err)
	tokenSvc := NewJWTTokenService("test-secret-key-at-least-32-chars", time.Hour, "filesolved")
	return NewAuthService(username, hash, hashSvc, tokenSvc)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := setupAuthService(t, "admin", "correct horse battery staple")

	token, expiry, err := svc.Login(context.Background(), "admin", "correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiry.After(time.Now()))

	// The issued token validates and carries the admin identity.
	tokenSvc := NewJWTTokenService("test-secret-key-at-least-32-chars", time.Hour, "filesolved")
	claims, err := tokenSvc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.AdminID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := setupAuthService(t, "admin", "correct horse battery staple")

	_, _, err := svc.Login(context.Background(), "admin", "incorrect horse")
	require.Error(t, err)
	assert.Equal(t, "AUTH_001", apperror.From(err).Code)
}

func TestAuthService_Login_WrongUsername(t *testing.T) {
	svc := setupAuthService(t, "admin", "correct horse battery staple")

	_, _, err := svc.Login(context.Background(), "root", "correct horse battery staple")
	require.Error(t, err)
	assert.Equal(t, "AUTH_001", apperror.From(err).Code)
}

func TestAuthService_Login_MalformedStoredHash(t *testing.T) {
	hashSvc := NewArgon2HashService()
	tokenSvc := NewJWTTokenService("test-secret-key-at-least-32-chars", time.Hour, "filesolved")
	svc := NewAuthService("admin", "not-a-hash", hashSvc, tokenSvc)

	_, _, err := svc.Login(context.Background(), "admin", "whatever")
	require.Error(t, err)
	// A broken credential store must look like a bad credential, not a 500.
	assert.Equal(t, "AUTH_001", apperror.From(err).Code)
}
