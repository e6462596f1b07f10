/*
Package errs defines the application error codes and CustomError, the error type that
carries a code, a client-facing message and the HTTP status to answer with.

Repositories and guards return *CustomError for expected failures; anything else is
turned into ErrUnknown by From when it reaches a handler.
*/
package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"remix/internal/pkg/logx"
)

// CustomError is an expected, client-facing failure.
type CustomError struct {
	Code    int
	Message string
	Status  int
}

// Error implements error.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns the error registered for code. details fill the printf verbs of the
// message template; for ErrUnknown the first detail, if an error, is logged instead.
// Unregistered codes yield ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &CustomError{
			Code:    unknownErr.Code,
			Message: unknownErr.Message,
			Status:  unknownErr.Status,
		}
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = http.StatusBadRequest
	}

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(
				originalErr,
				"Handling ErrUnknown with underlying error",
			)
		}
	} else if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"code", code,
			)
		}
	}

	return &customErr
}

// WithDetail returns a copy of the error whose message is suffixed with detail.
func (e *CustomError) WithDetail(detail string) *CustomError {
	if detail == "" {
		return e
	}
	out := *e
	out.Message = out.Message + ": " + detail
	return &out
}

// From converts any error into a *CustomError. Errors that already carry a CustomError
// (directly or wrapped) are returned unchanged; everything else becomes ErrUnknown and
// the original error is logged.
func From(err error) *CustomError {
	if err == nil {
		return nil
	}

	var ptr *CustomError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr
	}

	var val CustomError
	if errors.As(err, &val) {
		return &val
	}

	return NewError(ErrUnknown, err)
}

// HasCode reports whether err carries a CustomError with the given code.
func HasCode(err error, code int) bool {
	var ptr *CustomError
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code == code
	}

	var val CustomError
	if errors.As(err, &val) {
		return val.Code == code
	}

	return false
}
