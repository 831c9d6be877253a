package biz

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowrite/cowrite/internal/objects"
	"github.com/cowrite/cowrite/internal/pkg/xtest"
	"github.com/cowrite/cowrite/internal/store"
)

func TestHashPassword(t *testing.T) {
	password := "test-password-123"

	hashedPassword, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)

	// Test that same password produces different hashes (due to salt)
	hashedPassword2, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hashedPassword, hashedPassword2)
}

func TestVerifyPassword(t *testing.T) {
	password := "test-password-123"

	hashedPassword, err := HashPassword(password)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hashedPassword, password))
	assert.Error(t, VerifyPassword(hashedPassword, "wrong-password"))
	assert.Error(t, VerifyPassword("invalid-hash", password))
}

func TestGenerateSecretKey(t *testing.T) {
	secretKey, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.Len(t, secretKey, 64) // 32 bytes * 2 (hex encoding)

	secretKey2, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, secretKey, secretKey2)
}

func TestAuthService_SignUp(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupTestServices(t)

	u, err := svc.Auth.SignUp(ctx, SignUpInput{Email: " Alice@Example.com ", Name: "alice", Password: "secret-password"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, objects.UserStatusActive, u.Status)
	require.NoError(t, VerifyPassword(u.Password, "secret-password"))

	_, err = svc.Auth.SignUp(ctx, SignUpInput{Email: "alice@example.com", Name: "again", Password: "secret-password"})
	require.ErrorIs(t, err, ErrEmailTaken)

	tests := []struct {
		name  string
		input SignUpInput
	}{
		{name: "invalid email", input: SignUpInput{Email: "bob", Name: "bob", Password: "secret-password"}},
		{name: "missing name", input: SignUpInput{Email: "bob@example.com", Password: "secret-password"}},
		{name: "short password", input: SignUpInput{Email: "bob@example.com", Name: "bob", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Auth.SignUp(ctx, tt.input)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestAuthService_AuthenticateUser(t *testing.T) {
	ctx := context.Background()
	svc, stores := setupTestServices(t)
	u, _ := signUp(t, svc, "alice")

	got, err := svc.Auth.AuthenticateUser(ctx, "ALICE@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Auth.AuthenticateUser(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Auth.AuthenticateUser(ctx, "nobody@example.com", "secret-password")
	require.ErrorIs(t, err, ErrInvalidPassword)

	u.Status = objects.UserStatusDisabled
	ok, err := stores.Users.UpdateByID(ctx, u)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Auth.AuthenticateUser(ctx, "alice@example.com", "secret-password")
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_JWT(t *testing.T) {
	ctx := context.Background()
	svc, stores := setupTestServices(t)
	u, _ := signUp(t, svc, "alice")

	token, err := svc.Auth.GenerateJWTToken(ctx, u)
	require.NoError(t, err)

	got, err := svc.Auth.AuthenticateJWTToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.Email, got.Email)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Auth.AuthenticateJWTToken(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidJWT)
	})

	t.Run("other secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": u.ID,
			"exp":     time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("other-secret"))
		require.NoError(t, err)

		_, err = svc.Auth.AuthenticateJWTToken(ctx, forged)
		require.ErrorIs(t, err, ErrInvalidJWT)
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": u.ID,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Auth.AuthenticateJWTToken(ctx, expired)
		require.ErrorIs(t, err, ErrInvalidJWT)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := svc.Auth.GenerateJWTToken(ctx, &objects.User{ID: 999})
		require.NoError(t, err)

		_, err = svc.Auth.AuthenticateJWTToken(ctx, token)
		require.ErrorIs(t, err, ErrInvalidJWT)
	})

	t.Run("disabled user", func(t *testing.T) {
		stored, err := stores.Users.Get(ctx, u.ID)
		require.NoError(t, err)

		stored.Status = objects.UserStatusDisabled
		_, err = stores.Users.UpdateByID(ctx, stored)
		require.NoError(t, err)
		svc.Users.invalidateUserCache(ctx, u.ID)

		_, err = svc.Auth.AuthenticateJWTToken(ctx, token)
		require.ErrorIs(t, err, ErrInvalidJWT)
	})
}

func TestAuthService_AuthenticateJWTToken_StoreFailure(t *testing.T) {
	ctx := context.Background()
	drv := xtest.NewSQLiteDriver(t)
	require.NoError(t, store.Migrate(ctx, drv))

	svc := NewServicesForTest(store.New(drv))
	u, _ := signUp(t, svc, "alice")

	token, err := svc.Auth.GenerateJWTToken(ctx, u)
	require.NoError(t, err)

	_, err = drv.DB().ExecContext(ctx, "DROP TABLE users")
	require.NoError(t, err)

	_, err = svc.Auth.AuthenticateJWTToken(ctx, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidJWT)
}

func TestNewAuthService_GeneratesSecretKey(t *testing.T) {
	svc, err := NewAuthService(AuthServiceParams{})
	require.NoError(t, err)
	assert.Len(t, svc.secretKey, 64)
	assert.Equal(t, defaultTokenTTL, svc.tokenTTL)
}
