package sqlpatch

import (
	"errors"
	"fmt"
	"math"

	"remix/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Kind is the JSON type an updatable field accepts.
type Kind int

const (
	String Kind = iota
	Integer
)

func (k Kind) String() string {
	if k == Integer {
		return "integer"
	}
	return "string"
}

// Spec describes one updatable field.
type Spec struct {
	// Column is the physical column name; empty means the logical name is used.
	Column string

	Kind Kind

	// Rules is a validator tag applied to the value, e.g. "min=1,max=100".
	Rules string
}

// Fields is an entity's allow-list of updatable fields, keyed by logical name.
type Fields map[string]Spec

// Translation returns the logical to physical names that differ.
func (f Fields) Translation() Translation {
	t := Translation{}
	for name, spec := range f {
		if spec.Column != "" && spec.Column != name {
			t[name] = spec.Column
		}
	}
	return t
}

// Validate checks p against the allow-list. It fails with ErrEmptyUpdate for an empty payload,
// with ErrFieldNotUpdatable for the first name outside the allow-list, and with
// ErrInvalidFieldValue for a value of the wrong type or one that breaks its rules.
// Integral float values of Integer fields are converted to int64 in the returned copy.
func (f Fields) Validate(p Payload) (Payload, error) {
	if len(p) == 0 {
		return nil, errs.NewError(errs.ErrEmptyUpdate)
	}

	for _, field := range p {
		if _, ok := f[field.Name]; !ok {
			return nil, errs.NewError(errs.ErrFieldNotUpdatable, field.Name)
		}
	}

	out := make(Payload, 0, len(p))
	for _, field := range p {
		spec := f[field.Name]

		value, ok := coerce(field.Value, spec.Kind)
		if !ok {
			return nil, errs.NewError(errs.ErrInvalidFieldValue, field.Name, "expected "+spec.Kind.String())
		}

		if spec.Rules != "" {
			if err := validate.Var(value, spec.Rules); err != nil {
				return nil, errs.NewError(errs.ErrInvalidFieldValue, field.Name, describe(err))
			}
		}

		out = append(out, Field{Name: field.Name, Value: value})
	}

	return out, nil
}

func coerce(v any, kind Kind) (any, bool) {
	switch kind {
	case Integer:
		switch n := v.(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case float64:
			if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
				return int64(n), true
			}
		}
		return nil, false
	default:
		s, ok := v.(string)
		return s, ok
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("must satisfy %s", fe.Tag())
	}
	return err.Error()
}
