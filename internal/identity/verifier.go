// Package identity maps Clerk sessions and user records into the rest of the
// application. It is a read-only projection: nothing here writes back to the
// identity provider.
package identity

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks Clerk session tokens against the instance's PEM
// verification key (RS256).
type Verifier struct {
	key *rsa.PublicKey
}

func NewVerifier(pemKey string) (*Verifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse clerk jwt public key: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Verify validates the session token and returns the subject (the external
// user id).
func (v *Verifier) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return v.key, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return sub, nil
}
