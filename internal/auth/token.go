// Package auth issues and verifies the signed session tokens carried in the session cookie.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/avaliacao-fisica-api/internal/models"
)

// DefaultTTL is the absolute lifetime of a session token.
const DefaultTTL = 24 * time.Hour

var (
	// ErrMalformed covers undecodable tokens and signature mismatches.
	ErrMalformed = errors.New("session token malformed")
	// ErrExpired is reported for any token whose expiry has passed, whatever its signature.
	ErrExpired = errors.New("session token expired")
)

// Claims is the payload of a session token.
type Claims struct {
	AccountID int64       `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCodec builds a codec. A non-positive ttl falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration, opts ...Option) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a token for the account, valid until now+ttl.
func (c *Codec) Issue(accountID int64, email string, role models.Role) (string, time.Time, error) {
	if !role.Valid() {
		return "", time.Time{}, fmt.Errorf("issue session token: invalid role %q", role)
	}
	issuedAt := c.now().UTC()
	expiresAt := issuedAt.Add(c.ttl)
	claims := &Claims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry. Tokens are treated as expired once now reaches exp.
func (c *Codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || c.expiredUnverified(token) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !parsed.Valid || claims.AccountID <= 0 {
		return nil, ErrMalformed
	}
	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return c.secret, nil
}

// expiredUnverified decodes the payload without checking the signature so a stale token
// reports Expired even when it was also tampered with.
func (c *Codec) expiredUnverified(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !c.now().Before(exp.Time)
}
