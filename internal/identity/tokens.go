package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Purpose separates confirmation tokens from reset tokens.
type Purpose string

const (
	PurposeConfirm Purpose = "confirm"
	PurposeReset   Purpose = "reset"
)

type claims struct {
	Purpose     Purpose `json:"pur"`
	Fingerprint string  `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies the signed links sent by email.
type Tokens struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subject. fingerprint ties the token to the
// state it was issued against; Parse callers compare it.
func (t *Tokens) Issue(purpose Purpose, subject, fingerprint string) (string, error) {
	now := t.now()
	c := claims{
		Purpose:     purpose,
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return s, nil
}

// Parse verifies signature, expiry and purpose.
func (t *Tokens) Parse(token string, purpose Purpose) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return t.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if c.Purpose != purpose || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// fingerprint identifies a password hash without revealing it.
func fingerprint(hash string) string {
	sum := sha256.Sum256([]byte(hash))
	return hex.EncodeToString(sum[:8])
}
