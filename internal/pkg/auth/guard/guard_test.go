package guard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"remix/internal/app/model"
	"remix/internal/pkg/auth/jwt"
	"remix/internal/pkg/errs"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(username string) *jwt.Payload {
	return &jwt.Payload{Identity: jwt.Identity{UserID: 1, Username: username}}
}

func params(kv map[string]string) func(string) string {
	return func(name string) string { return kv[name] }
}

// authors is an in-memory AuthorLookup that counts its calls.
type authors struct {
	byID  map[int64]string
	calls int
}

func (a *authors) lookup(_ context.Context, id int64) (model.Author, error) {
	a.calls++
	name, ok := a.byID[id]
	if !ok {
		return model.Author{}, errs.NewError(errs.ErrRecipeNotFound, id)
	}
	return model.Author{Username: name}, nil
}

func code(t *testing.T, res Result) int {
	t.Helper()
	require.False(t, res.Passed())
	return errs.From(res.Err()).Code
}

func TestLoginRequired(t *testing.T) {
	assert.True(t, LoginRequired(context.Background(), Input{Identity: identity("user1")}).Passed())

	res := LoginRequired(context.Background(), Input{})
	assert.Equal(t, errs.ErrUnauthorized, code(t, res))
	assert.Equal(t, http.StatusUnauthorized, errs.From(res.Err()).Status)
}

func TestOwnershipRequired(t *testing.T) {
	store := &authors{byID: map[int64]string{1: "user1", 3: "user2"}}
	g := RecipeOwner(store.lookup)
	ctx := context.Background()

	t.Run("author passes", func(t *testing.T) {
		res := g(ctx, Input{Identity: identity("user1"), Param: params(map[string]string{"recipeId": "1"})})
		assert.True(t, res.Passed())
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		res := g(ctx, Input{Identity: identity("user2"), Param: params(map[string]string{"recipeId": "1"})})

		ce := errs.From(res.Err())
		assert.Equal(t, errs.ErrNotRecipeAuthor, ce.Code)
		assert.Equal(t, http.StatusForbidden, ce.Status)
		assert.Contains(t, ce.Message, "didn't create it")
	})

	t.Run("unknown resource is not found", func(t *testing.T) {
		res := g(ctx, Input{Identity: identity("user1"), Param: params(map[string]string{"recipeId": "99"})})

		ce := errs.From(res.Err())
		assert.Equal(t, errs.ErrRecipeNotFound, ce.Code)
		assert.Equal(t, http.StatusNotFound, ce.Status)
		assert.Equal(t, "The recipe with id of 99 was not found in the database.", ce.Message)
	})

	t.Run("anonymous is unauthorized without a lookup", func(t *testing.T) {
		before := store.calls
		res := g(ctx, Input{Param: params(map[string]string{"recipeId": "1"})})

		assert.Equal(t, errs.ErrUnauthorized, code(t, res))
		assert.Equal(t, before, store.calls)
	})

	t.Run("bad id", func(t *testing.T) {
		res := g(ctx, Input{Identity: identity("user1"), Param: params(map[string]string{"recipeId": "abc"})})
		assert.Equal(t, errs.ErrInvalidID, code(t, res))
	})
}

func TestOwnershipRequired_LookupErrorUnchanged(t *testing.T) {
	boom := errors.New("connection refused")
	g := OwnershipRequired(func(context.Context, int64) (model.Author, error) {
		return model.Author{}, boom
	}, "remixId", errs.ErrNotRemixAuthor)

	res := g(context.Background(), Input{Identity: identity("user1"), Param: params(map[string]string{"remixId": "4"})})
	assert.Same(t, boom, res.Err())
}

func TestOwnerVariants(t *testing.T) {
	store := &authors{byID: map[int64]string{5: "user1"}}
	in := Input{
		Identity: identity("user2"),
		Param:    params(map[string]string{"recipeId": "5", "remixId": "5", "reviewId": "5"}),
	}

	assert.Equal(t, errs.ErrNotRecipeAuthor, code(t, RecipeOwner(store.lookup)(context.Background(), in)))
	assert.Equal(t, errs.ErrNotRecipeReviewAuthor, code(t, RecipeReviewOwner(store.lookup)(context.Background(), in)))
	assert.Equal(t, errs.ErrNotRemixAuthor, code(t, RemixOwner(store.lookup)(context.Background(), in)))
	assert.Equal(t, errs.ErrNotRemixReviewAuthor, code(t, RemixReviewOwner(store.lookup)(context.Background(), in)))
}

func TestMatchingUsername(t *testing.T) {
	g := MatchingUsername("username")
	p := params(map[string]string{"username": "user1"})

	assert.True(t, g(context.Background(), Input{Identity: identity("user1"), Param: p}).Passed())
	assert.Equal(t, errs.ErrNotAccountOwner, code(t, g(context.Background(), Input{Identity: identity("user2"), Param: p})))
	assert.Equal(t, errs.ErrUnauthorized, code(t, g(context.Background(), Input{Param: p})))
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	var order []string
	step := func(name string, res Result) Guard {
		return func(context.Context, Input) Result {
			order = append(order, name)
			return res
		}
	}

	res := Run(context.Background(), Input{},
		step("first", Pass()),
		step("second", Fail(errs.NewError(errs.ErrUnauthorized))),
		step("third", Pass()),
	)

	assert.Equal(t, errs.ErrUnauthorized, code(t, res))
	assert.Equal(t, []string{"first", "second"}, order)

	assert.True(t, Run(context.Background(), Input{}).Passed())
}

func TestLoginCheckedBeforeOwnershipLookup(t *testing.T) {
	store := &authors{byID: map[int64]string{1: "user1"}}

	res := Run(context.Background(), Input{Param: params(map[string]string{"recipeId": "1"})},
		LoginRequired, RecipeOwner(store.lookup))

	assert.Equal(t, errs.ErrUnauthorized, code(t, res))
	assert.Zero(t, store.calls)
}

func TestMiddleware(t *testing.T) {
	store := &authors{byID: map[int64]string{1: "user1"}}

	r := chi.NewRouter()
	r.With(Middleware(LoginRequired, RecipeOwner(store.lookup))).
		Patch("/recipes/{recipeId}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

	send := func(who *jwt.Payload, target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, target, nil)
		if who != nil {
			req = req.WithContext(jwt.WithPayload(req.Context(), who))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send(identity("user1"), "/recipes/1").Code)
	assert.Equal(t, http.StatusUnauthorized, send(nil, "/recipes/1").Code)
	assert.Equal(t, http.StatusNotFound, send(identity("user1"), "/recipes/2").Code)

	rec := send(identity("user2"), "/recipes/1")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.ErrNotRecipeAuthor, body.Code)
	assert.Equal(t, "You can't edit this recipe because you didn't create it.", body.Message)
}

func TestOwnershipRequired_IDAboveInt32IsNotFound(t *testing.T) {
	store := &authors{byID: map[int64]string{1: "user1"}}
	res := RecipeOwner(store.lookup)(context.Background(), Input{
		Identity: identity("user1"),
		Param:    params(map[string]string{"recipeId": "3000000000"}),
	})

	assert.Equal(t, errs.ErrRecipeNotFound, code(t, res))
	assert.Equal(t, 1, store.calls)
}
