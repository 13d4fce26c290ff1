package server

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matzehuels/logsheet/pkg/buildinfo"
	"github.com/matzehuels/logsheet/pkg/errors"
)

// DefaultTokenTTL is the lifetime of tokens issued by `logsheet token`.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Identity is the authenticated caller. Username owns the workouts the
// caller stores; Name is only displayed.
type Identity struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type tokenClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for id that expires after ttl.
func IssueToken(secret string, id Identity, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New(errors.ErrCodeInvalidOptions, "a JWT secret is required to issue tokens")
	}
	if err := errors.ValidateUsername(id.Username); err != nil {
		return "", err
	}
	claims := tokenClaims{
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    buildinfo.Product,
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies a token issued by [IssueToken] and returns its identity.
func ParseToken(secret, token string) (Identity, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(buildinfo.Product))
	if err != nil {
		return Identity{}, errors.Wrap(errors.ErrCodeUnauthorized, err, "invalid token")
	}
	if err := errors.ValidateUsername(claims.Subject); err != nil {
		return Identity{}, errors.Wrap(errors.ErrCodeUnauthorized, err, "invalid token subject")
	}
	return Identity{Username: claims.Subject, Name: claims.Name}, nil
}
