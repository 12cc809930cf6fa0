package jwtutil

import (
	"errors"
	"time"

	"note-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
)

// Verification failures, in decreasing order of specificity. Callers at
// the HTTP boundary collapse all of these into a single generic 401;
// the distinction exists for logs, metrics and tests.
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrTokenExpired     = errors.New("token is expired")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenInvalid     = errors.New("token is invalid")
)

// UserClaims represents the JWT claims carried by an access token.
type UserClaims struct {
	UserID   uint   `json:"user_id"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWT issues and verifies signed tokens. The signing key is injected at
// construction; there is no package-level secret.
type JWT struct {
	signingKey []byte
	expiration time.Duration
}

// New creates a token codec from configuration. The signing key must be
// non-empty; config.Load already enforces a minimum length, this guards
// direct construction in tests and tools.
func New(cfg *config.JWTConfig) (*JWT, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("jwtutil: signing key is required")
	}
	expiration := time.Duration(cfg.ExpirationHours) * time.Hour
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &JWT{
		signingKey: []byte(cfg.SigningKey),
		expiration: expiration,
	}, nil
}

// Issue creates a signed token for the given user within their tenant.
func (j *JWT) Issue(userID, tenantID uint, role string) (string, error) {
	return j.IssueWithTTL(userID, tenantID, role, j.expiration)
}

// IssueWithTTL creates a signed token with an explicit lifetime.
func (j *JWT) IssueWithTTL(userID, tenantID uint, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		UserID:   userID,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.signingKey)
}

// Verify validates and parses a token string. On failure it returns one
// of the typed errors above so callers can record the cause.
func (j *JWT) Verify(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.signingKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
