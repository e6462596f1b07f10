package sqlpatch

import (
	"testing"

	"remix/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = Fields{
	"name":        {Kind: String, Rules: "min=1,max=10"},
	"cookingTime": {Column: "cooking_time", Kind: Integer, Rules: "gte=0,max=2147483647"},
	"email":       {Kind: String, Rules: "email"},
	"content":     {Column: "content", Kind: String},
}

func TestFields_Translation(t *testing.T) {
	assert.Equal(t, Translation{"cookingTime": "cooking_time"}, testFields.Translation())
}

func TestFields_Validate(t *testing.T) {
	p := Payload{
		{Name: "cookingTime", Value: float64(30)},
		{Name: "name", Value: "Soup"},
	}

	out, err := testFields.Validate(p)
	require.NoError(t, err)
	assert.Equal(t, Payload{
		{Name: "cookingTime", Value: int64(30)},
		{Name: "name", Value: "Soup"},
	}, out)
}

func TestFields_ValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		code    int
		message string
	}{
		{
			name:    "empty",
			payload: Payload{},
			code:    errs.ErrEmptyUpdate,
			message: "Please provide data to update.",
		},
		{
			name:    "unknown field rejected before values are checked",
			payload: Payload{{Name: "name", Value: 5}, {Name: "userId", Value: int64(1)}},
			code:    errs.ErrFieldNotUpdatable,
			message: "The field 'userId' cannot be updated.",
		},
		{
			name:    "wrong type",
			payload: Payload{{Name: "cookingTime", Value: "ten"}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'cookingTime' is invalid: expected integer",
		},
		{
			name:    "fractional integer",
			payload: Payload{{Name: "cookingTime", Value: 1.5}},
			code:    errs.ErrInvalidFieldValue,
		},
		{
			name:    "float at 2^63 does not wrap",
			payload: Payload{{Name: "cookingTime", Value: float64(9223372036854775808)}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'cookingTime' is invalid: expected integer",
		},
		{
			name:    "above int4 column range",
			payload: Payload{{Name: "cookingTime", Value: float64(2147483648)}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'cookingTime' is invalid: must satisfy max=2147483647",
		},
		{
			name:    "null string",
			payload: Payload{{Name: "content", Value: nil}},
			code:    errs.ErrInvalidFieldValue,
		},
		{
			name:    "negative",
			payload: Payload{{Name: "cookingTime", Value: int64(-1)}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'cookingTime' is invalid: must satisfy gte=0",
		},
		{
			name:    "too long",
			payload: Payload{{Name: "name", Value: "a very long name"}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'name' is invalid: must satisfy max=10",
		},
		{
			name:    "bad email",
			payload: Payload{{Name: "email", Value: "nope"}},
			code:    errs.ErrInvalidFieldValue,
			message: "The value of 'email' is invalid: must satisfy email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := testFields.Validate(tt.payload)
			require.Error(t, err)
			assert.Nil(t, out)

			ce := errs.From(err)
			assert.Equal(t, tt.code, ce.Code)
			assert.Equal(t, 400, ce.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, ce.Message)
			}
		})
	}
}
