package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"emotispell/internal/models"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the validated content of a session token.
type Claims struct {
	Identity   string
	Role       models.Role
	OwnerScope string
	ExpiresAt  time.Time
}

// tokenClaims is the internal claims type used for JWT parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
	Role       string `json:"role"`
	OwnerScope string `json:"ownerScope"`
}

// Issuer mints and verifies signed session tokens. Tokens carry the
// identity, its role and owner scope, and expire after Lifetime.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewIssuer creates a token issuer signing with the given secret.
func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// NewIssuerAt is like NewIssuer with an injected clock, for tests.
func NewIssuerAt(secret string, lifetime time.Duration, now func() time.Time) *Issuer {
	issuer := NewIssuer(secret, lifetime)
	issuer.now = now
	return issuer
}

// Issue signs a token for the given account.
func (i *Issuer) Issue(account *models.Account) (string, error) {
	now := i.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.lifetime)),
		},
		Role:       string(account.Role),
		OwnerScope: account.OwnerScope(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
// Expiry is checked against the issuer clock on every call.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenInvalid
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if parsed.Subject == "" || parsed.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		Identity:   parsed.Subject,
		Role:       models.Role(parsed.Role),
		OwnerScope: parsed.OwnerScope,
		ExpiresAt:  parsed.ExpiresAt.Time,
	}, nil
}
