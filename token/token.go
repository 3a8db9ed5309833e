// Package token issues and verifies the signed session tokens carried in the
// admin session cookie. Tokens are stateless: validity is the signature plus
// the embedded expiry, nothing is stored server-side.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/hotelvalmont/cms-server/admins"
)

// SessionLifetime is fixed at issuance. There is no sliding expiration; a
// new login is required once a token expires.
const SessionLifetime = 24 * time.Hour

// Claims are the statements embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	DisplayName string `json:"name"`
}

// Info returns the admin projection carried by the claims.
func (c *Claims) Info() admins.Info {
	return admins.Info{ID: c.Subject, Email: c.Email, DisplayName: c.DisplayName}
}

// Authority signs and verifies session tokens with a single server-wide
// symmetric key.
type Authority struct {
	signingKey []byte
	lifetime   time.Duration
	nowFunc    func() time.Time
}

type AuthorityOption func(*Authority)

// WithNowFunc sets the clock (primarily for testing).
func WithNowFunc(now func() time.Time) AuthorityOption {
	return func(a *Authority) {
		a.nowFunc = now
	}
}

// WithLifetime overrides the token lifetime (primarily for testing).
func WithLifetime(d time.Duration) AuthorityOption {
	return func(a *Authority) {
		a.lifetime = d
	}
}

func NewAuthority(signingKey []byte, options ...AuthorityOption) *Authority {
	a := &Authority{
		signingKey: signingKey,
		lifetime:   SessionLifetime,
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

// Issue produces a signed token embedding the admin identity, issued now and
// expiring after the configured lifetime.
func (a *Authority) Issue(info admins.Info) (string, error) {
	now := a.nowFunc()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   info.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
		},
		Email:       info.Email,
		DisplayName: info.DisplayName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "[Authority.Issue] SignedString")
	}
	return signed, nil
}

// Verify checks the signature and expiry of a raw token. Malformed tokens,
// wrong signatures and expired tokens all report the same way: callers never
// need to distinguish them.
func (a *Authority) Verify(raw string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return a.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.nowFunc),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
