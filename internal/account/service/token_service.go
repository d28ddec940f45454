package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/therishabh/chai-backend/internal/account/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/therishabh/chai-backend/internal/account/domain"
)

// TokenGenerator mints and verifies the signed access/refresh token pair.
// Access and refresh tokens are signed with different secrets, so a token
// issued for one purpose never verifies under the other.
type TokenGenerator interface {
	IssueAccess(user *domain.User) (string, error)
	IssueRefresh(user *domain.User) (string, error)
	VerifyAccess(tokenString string) (*AccessClaims, error)
	VerifyRefresh(tokenString string) (*RefreshClaims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// AccessClaims carry a point-in-time snapshot of the account's display
// fields. They are not re-fetched from storage while the token is valid.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// RefreshClaims carry only the subject identity.
type RefreshClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

type TokenService struct {
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) IssueAccess(user *domain.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.accessSecret))
}

func (ts *TokenService) IssueRefresh(user *domain.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique jti so every rotation produces a distinct token even
			// within the same second.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.refreshExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.refreshSecret))
}

// VerifyAccess parses and validates an access token. Expired, malformed and
// badly signed tokens come back as distinct errors from the jwt package
// (jwt.ErrTokenExpired, jwt.ErrTokenMalformed, jwt.ErrTokenSignatureInvalid).
func (ts *TokenService) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := ts.verify(tokenString, claims, ts.accessSecret); err != nil {
		return nil, err
	}

	return claims, nil
}

// VerifyRefresh parses and validates a refresh token.
func (ts *TokenService) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := ts.verify(tokenString, claims, ts.refreshSecret); err != nil {
		return nil, err
	}

	return claims, nil
}

func (ts *TokenService) verify(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}

	if !token.Valid {
		return fmt.Errorf("invalid token")
	}

	return nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessExpiry
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshExpiry
}
