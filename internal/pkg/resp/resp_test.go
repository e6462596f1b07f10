package resp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"remix/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	RespondSuccess(w, httptest.NewRequest(http.MethodGet, "/", nil), map[string]int{"id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"id":1}}`, w.Body.String())
}

func TestRespondErr(t *testing.T) {
	w := httptest.NewRecorder()
	RespondErr(w, httptest.NewRequest(http.MethodGet, "/", nil), errs.NewError(errs.ErrNotRemixAuthor))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"code":3104,"message":"You can't edit this remix because you didn't create it."}`, w.Body.String())

	w = httptest.NewRecorder()
	RespondErr(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":5000,"message":"An error has occurred"}`, w.Body.String())
}
