// Package token signs and verifies the stateless access tokens the accounts
// service hands out. Tokens are HS256 JWTs over a shared secret; there is no
// server-side session state, so a token stays valid until the secret rotates.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSignature covers every verification failure: structural
// corruption, algorithm mismatch and signature mismatch all collapse into it
// so callers cannot tell malformed from tampered.
var ErrInvalidSignature = errors.New("invalid token signature")

type Claims = jwt.MapClaims

type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue signs the given claims as-is. No exp or iat claim is added.
func (c *Codec) Issue(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify decodes tok and checks its signature. Only HS256 is accepted.
func (c *Codec) Verify(tok string) (Claims, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSignature
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}

// Subject extracts the sub claim; ok is false when it is absent or not a
// non-empty string.
func Subject(claims Claims) (string, bool) {
	sub, _ := claims["sub"].(string)
	return sub, sub != ""
}
