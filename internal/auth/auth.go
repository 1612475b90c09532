// Package auth issues the signed bearer tokens returned by the credential
// endpoints. Tokens are HS256 JWTs carrying the subject user's id and a
// fixed lifetime. No verification middleware exists in this service; the
// Parse helper is provided for tests and future guards.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenTTL is the fixed lifetime of every issued token.
const TokenTTL = time.Hour

// Claims represents the JWT claims used by the system.
// It embeds standard JWT claims and adds a user-specific identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ErrInvalidToken is returned by Parse for tokens that fail signature or
// claims validation, including expired ones.
var ErrInvalidToken = errors.New("invalid auth token")

// Issuer creates signed auth tokens with a process-wide secret.
type Issuer struct {
	signingSecretKey []byte

	// now is injectable so tests can control issuance time.
	now func() time.Time
}

// IssuerOption customizes an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces the issuance clock. Used by expiry tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// New creates an Issuer signing with the given secret.
func New(signingSecretKey []byte, optionsProto ...IssuerOption) *Issuer {
	issuer := &Issuer{
		signingSecretKey: signingSecretKey,
		now:              time.Now,
	}
	for _, protoOption := range optionsProto {
		protoOption(issuer)
	}

	return issuer
}

// Issue builds a signed token whose subject is the given user id,
// expiring TokenTTL after issuance.
func (i *Issuer) Issue(userID string) (string, error) {
	issuedAt := i.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, *claims)

	tokenString, err := token.SignedString(i.signingSecretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Parse validates a token string and returns the subject user id.
func (i *Issuer) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.signingSecretKey, nil
		},
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
