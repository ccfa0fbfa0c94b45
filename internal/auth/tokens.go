// Package auth issues and verifies bearer tokens and attaches the caller to
// the request context.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/dentalbudget/internal/apperr"
	"github.com/MrJamesThe3rd/dentalbudget/internal/user"
)

const credentialsDetail = "Could not validate credentials"

// Claims is the token payload. The subject holds the user's email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64     `json:"uid"`
	Role   user.Role `json:"role"`
}

// Tokens signs HS256 tokens with a shared secret. With an empty secret no
// token can be issued or accepted.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Enabled() bool {
	return len(t.secret) > 0
}

// Issue returns a signed token for u and its expiry.
func (t *Tokens) Issue(u *user.User) (string, time.Time, error) {
	if !t.Enabled() {
		return "", time.Time{}, apperr.Unauthorized("authentication is not configured")
	}

	now := t.now()
	expires := now.Add(t.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Email,
			ID:        strconv.FormatInt(u.ID, 10) + "-" + strconv.FormatInt(now.UnixNano(), 36),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		UserID: u.ID,
		Role:   u.Role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expires, nil
}

// Parse verifies signature and expiry.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	if !t.Enabled() {
		return nil, apperr.Unauthorized(credentialsDetail)
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthorized, err, "Token has expired")
		}

		return nil, apperr.Wrap(apperr.KindUnauthorized, err, credentialsDetail)
	}

	if !token.Valid || claims.UserID < 1 {
		return nil, apperr.Unauthorized(credentialsDetail)
	}

	return claims, nil
}
