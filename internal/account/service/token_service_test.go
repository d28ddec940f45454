package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therishabh/chai-backend/internal/account/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Liddell",
	}
}

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name           string
		accessMinutes  int
		refreshMinutes int
	}{
		{"short lifetimes", 15, 1440},
		{"long lifetimes", 60, 20160},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTokenService("a-secret", "r-secret", tt.accessMinutes, tt.refreshMinutes)

			assert.NotNil(t, ts)
			assert.Equal(t, time.Duration(tt.accessMinutes)*time.Minute, ts.AccessTokenTTL())
			assert.Equal(t, time.Duration(tt.refreshMinutes)*time.Minute, ts.RefreshTokenTTL())
		})
	}
}

func TestIssueAccess_Claims(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)
	user := testUser()

	before := time.Now()
	tokenString, err := ts.IssueAccess(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ts.VerifyAccess(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.True(t, claims.ExpiresAt.Time.After(before.Add(14*time.Minute)))
	assert.True(t, claims.ExpiresAt.Time.Before(before.Add(16*time.Minute)))
}

func TestIssueRefresh_Claims(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)
	user := testUser()

	tokenString, err := ts.IssueRefresh(user)
	require.NoError(t, err)

	claims, err := ts.VerifyRefresh(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Refresh token outlives the access token.
	accessToken, err := ts.IssueAccess(user)
	require.NoError(t, err)
	accessClaims, err := ts.VerifyAccess(accessToken)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.After(accessClaims.ExpiresAt.Time))
}

func TestIssue_UniquePerCall(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)
	user := testUser()

	first, err := ts.IssueRefresh(user)
	require.NoError(t, err)
	second, err := ts.IssueRefresh(user)
	require.NoError(t, err)

	// Back-to-back rotations must never mint the same token twice.
	assert.NotEqual(t, first, second)
}

func TestVerify_PurposeSeparation(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)
	user := testUser()

	accessToken, err := ts.IssueAccess(user)
	require.NoError(t, err)
	refreshToken, err := ts.IssueRefresh(user)
	require.NoError(t, err)

	// An access token must not verify as a refresh token and vice versa.
	_, err = ts.VerifyRefresh(accessToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ts.VerifyAccess(refreshToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerifyAccess_Expired(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", -1, 1440)

	tokenString, err := ts.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = ts.VerifyAccess(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.VerifyAccess(tt.token)
			assert.ErrorIs(t, err, jwt.ErrTokenMalformed)
		})
	}
}

func TestVerifyAccess_WrongSecret(t *testing.T) {
	issuer := NewTokenService("issuer-secret", "r", 15, 1440)
	verifier := NewTokenService("other-secret", "r", 15, 1440)

	tokenString, err := issuer.IssueAccess(testUser())
	require.NoError(t, err)

	_, err = verifier.VerifyAccess(tokenString)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestVerify_RejectsUnexpectedAlg(t *testing.T) {
	ts := NewTokenService("test-access-secret", "test-refresh-secret", 15, 1440)

	// alg=none token must be rejected before any claim is trusted.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.VerifyAccess(tokenString)
	assert.Error(t, err)
}
