package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"remix/internal/pkg/logx"
	"remix/internal/pkg/resp"
)

// Define Context Key for storing the Payload struct, preventing key collisions with other packages.
type contextKey string

const (
	// ContextAuthPayloadKey is the key used to store the parsed jwt.Payload (user identity) in the request Context.
	ContextAuthPayloadKey contextKey = "auth_payload"
)

// Verifier checks a token and returns its claims. Failures that only mean
// "this token does not authenticate anyone" must wrap ErrInvalidToken.
type Verifier interface {
	Verify(token string) (*Payload, error)
}

// IdentityExtractorMiddleware attempts to extract and validate a JWT from the Authorization header.
// It injects the Payload into the Context upon success. A missing or invalid token does NOT
// interrupt the request; the user is treated as anonymous instead. Any other verifier error
// ends the request with 500.
func IdentityExtractorMiddleware(verifier Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r.Header.Get("Authorization"))
			if tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := verifier.Verify(tokenString)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					logx.Ctx(r.Context()).Warn().Err(err).Msg("Invalid JWT provided, treating as anonymous")
					next.ServeHTTP(w, r)
					return
				}

				resp.RespondErr(w, r, err)
				return
			}

			logx.TagUsername(r.Context(), payload.Username)

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}

// WithPayload returns a copy of ctx carrying payload as the request identity.
func WithPayload(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, ContextAuthPayloadKey, payload)
}

// FromContext returns the identity stored in ctx, or nil for anonymous requests.
func FromContext(ctx context.Context) *Payload {
	payload, ok := ctx.Value(ContextAuthPayloadKey).(*Payload)
	if !ok {
		return nil
	}
	return payload
}

// GetPayloadFromContext safely extracts the authenticated Payload from the request Context.
// In contexts where IdentityExtractorMiddleware is used, a nil return means the user is anonymous.
func GetPayloadFromContext(r *http.Request) *Payload {
	return FromContext(r.Context())
}
