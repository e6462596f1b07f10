/*
Package sqlpatch turns sparse update payloads into parameterized SQL SET clauses.

A payload keeps its keys in the order the client sent them; that order decides the
positional parameter each value is bound to. Column names are quoted, values are
never written into the SQL text.
*/
package sqlpatch

import (
	"fmt"
	"strings"

	"remix/internal/pkg/errs"
)

// Translation maps logical (API) field names to physical column names.
// Names missing from the table are used as column names unchanged.
type Translation map[string]string

// Column returns the physical column for the logical name.
func (t Translation) Column(name string) string {
	if col, ok := t[name]; ok {
		return col
	}
	return name
}

// SetClause is the result of BuildSetClause.
type SetClause struct {
	// Clause is the assignment list, e.g. `"name"=$1, "cooking_time"=$2`.
	Clause string

	// Values holds the bind parameters; Values[i] belongs to placeholder $(i+1).
	Values []any
}

// Next returns the index of the first placeholder after the clause's own,
// for the caller's WHERE parameters.
func (s SetClause) Next() int {
	return len(s.Values) + 1
}

// BuildSetClause renders p as a SET assignment list with placeholders $1..$n in payload order.
// A nil translation is treated as empty. An empty payload fails with ErrEmptyUpdate.
func BuildSetClause(p Payload, t Translation) (SetClause, error) {
	if len(p) == 0 {
		return SetClause{}, errs.NewError(errs.ErrEmptyUpdate)
	}

	cols := make([]string, len(p))
	values := make([]any, len(p))
	for i, f := range p {
		cols[i] = fmt.Sprintf("%s=$%d", quoteIdent(t.Column(f.Name)), i+1)
		values[i] = f.Value
	}

	return SetClause{
		Clause: strings.Join(cols, ", "),
		Values: values,
	}, nil
}

// quoteIdent wraps name in double quotes, doubling any embedded quote.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
