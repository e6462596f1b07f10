/*
Package guard implements the authorization checks that run before protected handlers.

A Guard inspects the request identity and path parameters and returns a Result:
Pass, or Fail with the error to respond with. Guards are composed with Run or
Middleware, which stop at the first failure. Identity extraction itself happens
earlier, in jwt.IdentityExtractorMiddleware.
*/
package guard

import (
	"context"
	"net/http"

	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/resp"

	"github.com/go-chi/chi/v5"
)

// Input is what a guard may inspect.
type Input struct {
	// Identity is nil for anonymous requests.
	Identity *jwt.Payload

	// Param returns a path parameter by name.
	Param func(name string) string
}

// Result is the outcome of a guard.
type Result struct {
	err error
}

// Pass lets the request continue.
func Pass() Result {
	return Result{}
}

// Fail stops the request with err.
func Fail(err error) Result {
	return Result{err: err}
}

// Passed reports whether the guard let the request through.
func (r Result) Passed() bool {
	return r.err == nil
}

// Err returns the failure, or nil for a passing result.
func (r Result) Err() error {
	return r.err
}

// Guard is a single authorization check.
type Guard func(ctx context.Context, in Input) Result

// Run applies guards in order and returns the first failure.
func Run(ctx context.Context, in Input, guards ...Guard) Result {
	for _, g := range guards {
		if res := g(ctx, in); !res.Passed() {
			return res
		}
	}
	return Pass()
}

// Middleware runs guards against the request identity and chi path parameters.
// A failing guard ends the request with its error.
func Middleware(guards ...Guard) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			in := Input{
				Identity: jwt.GetPayloadFromContext(r),
				Param: func(name string) string {
					return chi.URLParam(r, name)
				},
			}

			if res := Run(r.Context(), in, guards...); !res.Passed() {
				resp.RespondErr(w, r, res.Err())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
