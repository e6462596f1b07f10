package jwt

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	payload *Payload
	err     error
	calls   []string
}

func (s *stubVerifier) Verify(token string) (*Payload, error) {
	s.calls = append(s.calls, token)
	return s.payload, s.err
}

// serve runs the extractor and reports the identity the next handler saw.
func serve(t *testing.T, v Verifier, header string) (*httptest.ResponseRecorder, *Payload, bool) {
	t.Helper()

	var (
		seen    *Payload
		reached bool
	)
	h := IdentityExtractorMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seen = GetPayloadFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec, seen, reached
}

func TestIdentityExtractor_NoHeaderIsAnonymous(t *testing.T) {
	v := &stubVerifier{}

	rec, seen, reached := serve(t, v, "")

	assert.True(t, reached)
	assert.Nil(t, seen)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, v.calls)
}

func TestIdentityExtractor_ValidToken(t *testing.T) {
	s := NewSigner("secret", 0)
	token, err := s.Issue(testIdentity)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + token, "bearer " + token, token, "  " + token + " "} {
		_, seen, reached := serve(t, s, header)

		assert.True(t, reached)
		require.NotNil(t, seen, header)
		assert.Equal(t, "user1", seen.Username)
	}
}

func TestIdentityExtractor_InvalidTokenDegradesToAnonymous(t *testing.T) {
	s := NewSigner("secret", 0)
	forged, err := NewSigner("attacker", 0).Issue(testIdentity)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + forged, "garbage", "Bearer "} {
		rec, seen, reached := serve(t, s, header)

		assert.True(t, reached, header)
		assert.Nil(t, seen, header)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestIdentityExtractor_OtherErrorsAreFatal(t *testing.T) {
	v := &stubVerifier{err: errors.New("key store unavailable")}

	rec, _, reached := serve(t, v, "Bearer abc")

	assert.False(t, reached)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error has occurred")
	assert.Equal(t, []string{"abc"}, v.calls)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("BEARER abc"))
	assert.Equal(t, "abc", bearerToken("abc"))
	assert.Equal(t, "", bearerToken("   "))
	assert.Equal(t, "Bearer", bearerToken("Bearer"))
}
