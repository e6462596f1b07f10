package req

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginInput struct {
	Username string `json:"username" validate:"required,min=1,max=30"`
	Password string `json:"password" validate:"required,min=5"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestBindJSON(t *testing.T) {
	var in loginInput
	cerr := BindJSON(httptest.NewRecorder(), jsonRequest(`{"username":"u1","password":"password"}`), &in)

	require.Nil(t, cerr)
	assert.Equal(t, loginInput{Username: "u1", Password: "password"}, in)
}

func TestBindJSON_Errors(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		code   int
		substr string
	}{
		{
			name: "wrong content type",
			req:  httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)),
			code: errs.ErrUnsupportedMediaType,
		},
		{
			name: "syntax",
			req:  jsonRequest(`{"username":`),
			code: errs.ErrInvalidJSONFormat,
		},
		{
			name: "unknown field",
			req:  jsonRequest(`{"username":"u1","password":"password","isAdmin":true}`),
			code: errs.ErrInvalidJSONFormat,
		},
		{
			name:   "validation uses json names",
			req:    jsonRequest(`{"username":"u1","password":"abc"}`),
			code:   errs.ErrInvalidParams,
			substr: "password must satisfy min=5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in loginInput
			cerr := BindJSON(httptest.NewRecorder(), tt.req, &in)

			require.NotNil(t, cerr)
			assert.Equal(t, tt.code, cerr.Code)
			if tt.substr != "" {
				assert.Contains(t, cerr.Message, tt.substr)
			}
		})
	}
}

func TestBindPayload(t *testing.T) {
	p, cerr := BindPayload(httptest.NewRecorder(), jsonRequest(`{"name":"a","servings":2}`))
	require.Nil(t, cerr)
	assert.Equal(t, sqlpatch.Payload{{Name: "name", Value: "a"}, {Name: "servings", Value: int64(2)}}, p)

	_, cerr = BindPayload(httptest.NewRecorder(), jsonRequest(`nope`))
	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrInvalidJSONFormat, cerr.Code)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "recipeId", "42")
	id, cerr := PathID(r, "recipeId")
	require.Nil(t, cerr)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "recipeId", raw)
		_, cerr := PathID(r, "recipeId")
		require.NotNil(t, cerr, raw)
		assert.Equal(t, errs.ErrInvalidID, cerr.Code)
		assert.Equal(t, "The recipeId must be a positive integer.", cerr.Message)
	}
}

func TestQuery(t *testing.T) {
	v, cerr := Query(httptest.NewRequest(http.MethodGet, "/recipes?recipeName=soup", nil), "recipeName")
	require.Nil(t, cerr)
	assert.Equal(t, "soup", v)

	v, cerr = Query(httptest.NewRequest(http.MethodGet, "/recipes", nil), "recipeName")
	require.Nil(t, cerr)
	assert.Empty(t, v)

	for _, target := range []string{"/recipes?name=soup", "/recipes?recipeName=", "/recipes?recipeName=a&x=1"} {
		_, cerr := Query(httptest.NewRequest(http.MethodGet, target, nil), "recipeName")
		require.NotNil(t, cerr, target)
		assert.Equal(t, "The query string must only contain the non-empty property 'recipeName'.", cerr.Message)
	}
}

func TestLimit(t *testing.T) {
	n, cerr := Limit(httptest.NewRequest(http.MethodGet, "/", nil), 10)
	require.Nil(t, cerr)
	assert.Equal(t, 10, n)

	n, cerr = Limit(httptest.NewRequest(http.MethodGet, "/?limit=3", nil), 10)
	require.Nil(t, cerr)
	assert.Equal(t, 3, n)

	_, cerr = Limit(httptest.NewRequest(http.MethodGet, "/?limit=0", nil), 10)
	require.NotNil(t, cerr)
}
