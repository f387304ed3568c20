package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TypeRefresh marks refresh tokens; access tokens carry no type.
const TypeRefresh = "refresh"

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка JWT.
type Claims struct {
	Type string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 access/refresh tokens.
type Tokens struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	now func() time.Time
}

func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{Secret: []byte(secret), AccessTTL: accessTTL, RefreshTTL: refreshTTL, now: time.Now}
}

func (t *Tokens) issue(sub, typ string, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

// Access creates an access token for sub (user email).
func (t *Tokens) Access(sub string) (string, error) {
	return t.issue(sub, "", t.AccessTTL)
}

// Refresh creates a refresh token for sub.
func (t *Tokens) Refresh(sub string) (string, error) {
	return t.issue(sub, TypeRefresh, t.RefreshTTL)
}

// Decode verifies signature and expiry and returns the claims.
func (t *Tokens) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		return t.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
