package jsontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty object", input: "{}"},
		{name: "empty array", input: "[]"},
		{name: "number array", input: "[1,2,3]"},
		{name: "nested", input: `{"from":{"contains":"urgent"},"any":[true,null,1.5]}`},
		{name: "scalar string", input: `"hello"`},
		{name: "scalar number", input: "42"},
		{name: "null", input: "null"},
		{name: "surrounding whitespace", input: "  \n{\"a\":1}\t "},
		{name: "plain text", input: "not json", wantErr: true},
		{name: "unterminated object", input: "{", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "trailing data", input: "{} {}", wantErr: true},
		{name: "single quotes", input: "{'a':1}", wantErr: true},
		{name: "trailing comma", input: "[1,2,]", wantErr: true},
		{name: "NaN literal", input: `{"score":NaN}`, wantErr: true},
		{name: "Infinity literal", input: "[Infinity]", wantErr: true},
		{name: "negative Infinity literal", input: "-Infinity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, IsValid(tt.input))
				return
			}
			require.Error(t, err)
			assert.False(t, IsValid(tt.input))

			var syntaxErr *SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.NotEmpty(t, syntaxErr.Reason)
		})
	}
}

func TestSyntaxError_ReportsOffset(t *testing.T) {
	err := Validate(`{"a": x}`)
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Greater(t, syntaxErr.Offset, int64(0))
	assert.Contains(t, err.Error(), "offset")
}
