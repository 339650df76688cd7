package jsobj_test

import (
	"testing"

	"github.com/fwojciec/notegrab/jsobj"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"replaces standalone undefined", `{"a":undefined,"b":[undefined]}`, `{"a":null,"b":[null]}`},
		{"keeps identifiers containing the token", `{"isUndefined":1,"undefinedCount":2,"x_undefined":3}`, `{"isUndefined":1,"undefinedCount":2,"x_undefined":3}`},
		{"leaves text without the token untouched", `{"a":"b"}`, `{"a":"b"}`},
		{"does not rewrite other JavaScript constructs", `{"a":NaN}`, `{"a":NaN}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, jsobj.Sanitize(tt.input))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{"a":undefined}`,
		`{"a":"undefined undefined","b":undefinedValue}`,
		``,
	}
	for _, in := range inputs {
		once := jsobj.Sanitize(in)
		assert.Equal(t, once, jsobj.Sanitize(once))
	}
}
