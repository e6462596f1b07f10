package sqlpatch

import (
	"encoding/json"
	"errors"
	"io"

	"remix/internal/pkg/errs"
)

// Field is one entry of an update payload.
type Field struct {
	Name  string
	Value any
}

// Payload is an ordered update payload. Each name appears at most once.
type Payload []Field

// Get returns the value stored under name.
func (p Payload) Get(name string) (any, bool) {
	for _, f := range p {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of name in place, or appends it when absent.
func (p *Payload) Set(name string, value any) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Field{Name: name, Value: value})
}

// Names returns the field names in payload order.
func (p Payload) Names() []string {
	names := make([]string, len(p))
	for i, f := range p {
		names[i] = f.Name
	}
	return names
}

// DecodePayload reads a single JSON object from r and keeps its keys in document order.
// Numbers become int64 when integral and float64 otherwise. A repeated key keeps its first
// position and takes the last value. An empty body decodes to an empty payload.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return Payload{}, nil
	}
	if err != nil {
		return nil, errs.NewError(errs.ErrInvalidJSONFormat)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errs.NewError(errs.ErrInvalidJSONFormat)
	}

	p := Payload{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errs.NewError(errs.ErrInvalidJSONFormat)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errs.NewError(errs.ErrInvalidJSONFormat)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, errs.NewError(errs.ErrInvalidJSONFormat)
		}
		p.Set(name, normalize(value))
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.NewError(errs.ErrExtraContentInBody)
	}

	return p, nil
}

func normalize(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
