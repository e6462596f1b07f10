package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{UserID: 7, Username: "user1", Email: "user1@example.com"}

func TestIssueAndVerify(t *testing.T) {
	s := NewSigner("secret", 0)

	token, err := s.Issue(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := s.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, testIdentity, payload.Identity)
	assert.Equal(t, TokenIssuer, payload.Issuer)
	assert.NotZero(t, payload.IssuedAt)
	assert.Zero(t, payload.ExpiresAt)
}

func TestIssue_WithTTL(t *testing.T) {
	s := NewSigner("secret", time.Hour)

	token, err := s.Issue(testIdentity)
	require.NoError(t, err)

	payload, err := s.Verify(token)
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), payload.ExpiresAt, 5)
}

func TestIssue_ClaimsCarryNoSecrets(t *testing.T) {
	token, err := NewSigner("secret", 0).Issue(testIdentity)
	require.NoError(t, err)

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.ElementsMatch(t, []string{"iat", "iss", "userId", "username", "email"}, keys(claims))
}

func keys(m jwt.MapClaims) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestVerify_InvalidTokens(t *testing.T) {
	s := NewSigner("secret", 0)

	good, err := s.Issue(testIdentity)
	require.NoError(t, err)

	otherKey, err := NewSigner("other-secret", 0).Issue(testIdentity)
	require.NoError(t, err)

	expired, err := (&Signer{secret: []byte("secret"), ttl: -time.Hour}).Issue(testIdentity)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Payload{Identity: testIdentity}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := map[string]string{
		"wrong secret": otherKey,
		"expired":      expired,
		"alg none":     none,
		"malformed":    "not-a-token",
		"tampered":     tampered,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			payload, err := s.Verify(token)
			assert.Nil(t, payload)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}
