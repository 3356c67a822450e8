package repair

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTagsClosedTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "array value round-trips",
			in:   `{"a": 1, <parameter name="b">[1,2,3]</parameter>}`,
			want: `{"a": 1, "b": [1,2,3]}`,
		},
		{
			name: "object value round-trips",
			in:   `{"a": 1, <parameter name="b">{"x": 2}</parameter>}`,
			want: `{"a": 1, "b": {"x": 2}}`,
		},
		{
			name: "non-JSON value becomes string",
			in:   `{"a": 1, <parameter name="b">hello world</parameter>}`,
			want: `{"a": 1, "b": "hello world"}`,
		},
		{
			name: "multiple tags in one document",
			in:   `{<parameter name="a">1</parameter>, <parameter name="b">"two"</parameter>}`,
			want: `{"a": 1, "b": "two"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "result should parse: %s", got)
		})
	}
}

func TestNormalizeTagsRoundTrip(t *testing.T) {
	got := NormalizeTags(`{"a": 1, <parameter name="b">[1,2,3]</parameter>}`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, float64(1), decoded["a"])
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, decoded["b"])
}

func TestNormalizeTagsUnclosedArray(t *testing.T) {
	got := NormalizeTags(`{"a": 1, <parameter name="b">["x", "y"]}`)
	assert.Equal(t, `{"a": 1, "b": ["x", "y"]}`, got)
}

func TestNormalizeTagsUnclosedArrayTruncated(t *testing.T) {
	// The array never balances: fall back to the empty array and drop the
	// dangling tail.
	got := NormalizeTags(`{"a": 1, <parameter name="b">["x", "y"`)
	assert.Equal(t, `{"a": 1, "b": []`, got)
}

func TestNormalizeTagsUnclosedObject(t *testing.T) {
	got := NormalizeTags(`{"a": 1, <parameter name="b">{"x": 2}}`)
	assert.Equal(t, `{"a": 1, "b": {"x": 2}}`, got)
}

func TestNormalizeTagsLeadingArray(t *testing.T) {
	got := NormalizeTags(`<parameter name="items">["a", "b"]}`)
	assert.Equal(t, `"items": ["a", "b"]}`, got)
}

func TestNormalizeTagsScalar(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "number scalar kept as JSON",
			in:   `{"a": 1, <parameter name="count">42}`,
			want: `{"a": 1, "count": 42}`,
		},
		{
			name: "bare word wrapped as string",
			in:   `{"a": 1, <parameter name="status">active}`,
			want: `{"a": 1, "status": "active"}`,
		},
		{
			name: "scalar at end of string",
			in:   `{"a": 1, <parameter name="flag">true`,
			want: `{"a": 1, "flag": true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestNormalizeTagsSelfClosing(t *testing.T) {
	got := NormalizeTags(`{"a": 1, <parameter name="missing"/>}`)
	assert.Equal(t, `{"a": 1, "missing": null}`, got)
}

func TestNormalizeTagsStripsLeftovers(t *testing.T) {
	got := NormalizeTags(`{"a": 1} <invoke name="weird">`)
	assert.Equal(t, `{"a": 1} `, got)
}

func TestNormalizeTagsNoOpOnCleanJSON(t *testing.T) {
	in := `{"a": 1, "b": ["x", "y"], "c": {"d": null}}`
	assert.Equal(t, in, NormalizeTags(in))
}
