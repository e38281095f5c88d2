// Package token issues and verifies the signed credentials that bind a caller
// to a user identifier.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued credential stays valid. There is no refresh
// or revocation; a token lives its full lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure. Expired, malformed and
// badly signed tokens are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 credentials with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, ttl: DefaultTTL, now: time.Now}
}

// NewIssuerAt is NewIssuer with an injectable clock and TTL, for expiry tests.
func NewIssuerAt(secret []byte, ttl time.Duration, now func() time.Time) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, now: now}
}

// Issue produces a signed token embedding userID, valid from now until
// now + TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	issued := i.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded user identifier.
// Any failure collapses to ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string) (string, error) {
	c := &claims{}
	tok, err := jwt.ParseWithClaims(tokenStr, c, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || c.UserID == "" {
		return "", ErrInvalidToken
	}
	return c.UserID, nil
}
