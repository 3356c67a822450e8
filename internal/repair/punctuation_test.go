package repair

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "missing comma after array value",
			in:   `{"a": [1,2]  "b": 3}`,
			want: `{"a": [1,2],  "b": 3}`,
		},
		{
			name: "missing comma after object value",
			in:   `{"a": {"x": 1} "b": 3}`,
			want: `{"a": {"x": 1}, "b": 3}`,
		},
		{
			name: "missing comma after string value",
			in:   `{"a": "one" "b": "two"}`,
			want: `{"a": "one", "b": "two"}`,
		},
		{
			name: "trailing comma before closing brace",
			in:   `{"a": 1,}`,
			want: `{"a": 1}`,
		},
		{
			name: "trailing comma before closing bracket",
			in:   `{"a": [1, 2,]}`,
			want: `{"a": [1, 2]}`,
		},
		{
			name: "trailing comma with whitespace",
			in:   "{\"a\": 1,\n}",
			want: "{\"a\": 1\n}",
		},
		{
			name: "valid json untouched",
			in:   `{"a": [1,2], "b": {"c": "d"}}`,
			want: `{"a": [1,2], "b": {"c": "d"}}`,
		},
		{
			name: "existing comma not doubled",
			in:   `{"a": "one", "b": "two"}`,
			want: `{"a": "one", "b": "two"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixPunctuation(tt.in))
		})
	}
}

func TestFixPunctuationProducesValidJSON(t *testing.T) {
	got := FixPunctuation(`{"a": [1,2]  "b": 3}`)
	require.True(t, json.Valid([]byte(got)), "repaired: %s", got)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Contains(t, decoded, "a")
	assert.Contains(t, decoded, "b")
}

func TestFixPunctuationEscapedQuotesInStrings(t *testing.T) {
	// Escaped quotes must not confuse the string-value pattern.
	in := `{"a": "say \"hi\"" "b": 1}`
	got := FixPunctuation(in)
	assert.Equal(t, `{"a": "say \"hi\"", "b": 1}`, got)
	assert.True(t, json.Valid([]byte(got)))
}
