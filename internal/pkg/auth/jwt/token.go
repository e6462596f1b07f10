package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenIssuer identifies the issuer of the token.
const TokenIssuer = "Remix-Server"

// ErrInvalidToken is returned for any token that fails verification: bad signature,
// expired, malformed or signed with an unexpected algorithm.
var ErrInvalidToken = errors.New("invalid token")

// Signer issues and verifies HS256 identity tokens.
type Signer struct {
	secret []byte

	// ttl of zero issues tokens without an expiry.
	ttl time.Duration
}

// NewSigner creates a Signer with the given secret and token lifetime.
func NewSigner(secretKey string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secretKey), ttl: ttl}
}

// Issue creates and signs a token for identity. The issued-at time is set here.
func (s *Signer) Issue(identity Identity) (string, error) {
	now := time.Now()

	payload := &Payload{
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
			Issuer:   TokenIssuer,
		},
		Identity: identity,
	}
	if s.ttl != 0 {
		payload.ExpiresAt = now.Add(s.ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString. Every verification failure wraps ErrInvalidToken.
func (s *Signer) Verify(tokenString string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
