/*
Package req provides helper functions for HTTP request parsing and data binding.

It binds and validates JSON bodies, decodes ordered update payloads, and parses
path and query parameters into the error types the handlers respond with.
*/
package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"remix/internal/pkg/errs"
	"remix/internal/pkg/sqlpatch"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// MaxBodySize caps JSON request bodies.
const MaxBodySize int64 = 1 << 20 // 1 MB

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkContentType(r *http.Request) *errs.CustomError {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}
	return nil
}

// BindJSON decodes the JSON request body into dst and validates it with its `validate` tags.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	if cerr := checkContentType(r); cerr != nil {
		return cerr
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	if err := validate.Struct(dst); err != nil {
		return errs.NewError(errs.ErrInvalidParams).WithDetail(describe(err))
	}

	return nil
}

// BindPayload decodes the request body as an ordered update payload.
func BindPayload(w http.ResponseWriter, r *http.Request) (sqlpatch.Payload, *errs.CustomError) {
	if cerr := checkContentType(r); cerr != nil {
		return nil, cerr
	}

	p, err := sqlpatch.DecodePayload(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		return nil, errs.From(err)
	}
	return p, nil
}

// PathID parses the chi URL parameter name as a positive integer id.
func PathID(r *http.Request, name string) (int64, *errs.CustomError) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewError(errs.ErrInvalidID, name)
	}
	return id, nil
}

// Query returns the value of the only query property the endpoint accepts.
// Any other property, or an empty value for the allowed one, is rejected.
func Query(r *http.Request, allowed string) (string, *errs.CustomError) {
	values := r.URL.Query()
	for key := range values {
		if key != allowed {
			return "", errs.NewError(errs.ErrInvalidQuery, allowed)
		}
	}

	if _, ok := values[allowed]; !ok {
		return "", nil
	}

	value := strings.TrimSpace(values.Get(allowed))
	if value == "" {
		return "", errs.NewError(errs.ErrInvalidQuery, allowed)
	}
	return value, nil
}

// Limit parses the optional `limit` query property. It returns def when the property is absent.
func Limit(r *http.Request, def int) (int, *errs.CustomError) {
	raw, cerr := Query(r, "limit")
	if cerr != nil {
		return 0, cerr
	}
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errs.NewError(errs.ErrInvalidID, "limit")
	}
	return n, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
