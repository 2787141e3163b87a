// Package service provides authentication-related services for access token
// generation and validation.
package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/familyvault/internal/auth/domain"

	apperrors "github.com/allisson/familyvault/internal/errors"
)

// Claims carries the JWT claims embedded in access tokens.
// The subject holds the user ID; the email claim is informational only.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService defines the interface for access token operations
type TokenService interface {
	Generate(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
	Parse(token string) (*Claims, error)
}

// jwtTokenService implements TokenService using HMAC-signed JWTs.
type jwtTokenService struct {
	secretKey  []byte
	method     jwt.SigningMethod
	expiration time.Duration
}

// NewTokenService creates a TokenService signing with the given HMAC algorithm.
// Supported algorithms: HS256, HS384, HS512.
func NewTokenService(secretKey string, algorithm string, expiration time.Duration) (TokenService, error) {
	if secretKey == "" {
		return nil, apperrors.New("token secret key cannot be empty")
	}

	var method jwt.SigningMethod
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, apperrors.New(fmt.Sprintf("unsupported token algorithm: %s", algorithm))
	}

	return &jwtTokenService{
		secretKey:  []byte(secretKey),
		method:     method,
		expiration: expiration,
	}, nil
}

// Generate creates a signed access token for the given user.
func (s *jwtTokenService) Generate(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign access token")
	}

	return token, expiresAt, nil
}

// Parse validates the signature and expiration of an access token and returns its claims.
func (s *jwtTokenService) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with a different algorithm
		if t.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, authDomain.ErrInvalidToken
	}

	return claims, nil
}
