package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personaSchema() *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"personas", "notes"},
		Properties: map[string]*Schema{
			"personas": {
				Type: "array",
				Items: &Schema{
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]*Schema{
						"name":    {Type: "string"},
						"summary": {Type: "string"},
					},
				},
			},
			"notes": {Type: "array", Items: &Schema{Type: "string"}},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	doc := `{"personas": [{"name": "Ops Lead", "summary": "..."}], "notes": ["extra context"]}`
	assert.NoError(t, personaSchema().Validate([]byte(doc)))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantPath string
		wantMsg  string
	}{
		{
			name:     "missing required field",
			doc:      `{"personas": []}`,
			wantPath: "notes",
			wantMsg:  "required field missing",
		},
		{
			name:     "wrong type at nested path",
			doc:      `{"personas": "not an array", "notes": []}`,
			wantPath: "personas",
			wantMsg:  "unexpected type",
		},
		{
			name:     "wrong item type in array",
			doc:      `{"personas": [], "notes": [1]}`,
			wantPath: "notes[0]",
			wantMsg:  "unexpected type",
		},
		{
			name:     "missing required in array item",
			doc:      `{"personas": [{"summary": "x"}], "notes": []}`,
			wantPath: "personas[0].name",
			wantMsg:  "required field missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := personaSchema().Validate([]byte(tt.doc))
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Equal(t, tt.wantPath, verr.Path)
			assert.Equal(t, tt.wantMsg, verr.Message)
			assert.Contains(t, err.Error(), "validation failed at")
		})
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	err := personaSchema().Validate([]byte(`{}`))
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Len(t, verr.Violations, 2)
	assert.Contains(t, err.Error(), "2 violations total")
}

func TestValidateNonJSONReturnsParseError(t *testing.T) {
	err := personaSchema().Validate([]byte("I cannot help with that request."))
	require.Error(t, err)

	_, ok := err.(*ValidationError)
	assert.False(t, ok, "parse failures are not validation errors")
	assert.Contains(t, err.Error(), "parse")
}

func TestCheckEnumAndBounds(t *testing.T) {
	min := 1.0
	max := 10.0
	minLen := 2
	s := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"level": {Type: "string", Enum: []string{"low", "high"}},
			"count": {Type: "number", Minimum: &min, Maximum: &max},
			"code":  {Type: "string", MinLength: &minLen},
		},
	}

	tests := []struct {
		name       string
		value      map[string]any
		violations int
	}{
		{"all valid", map[string]any{"level": "low", "count": 5.0, "code": "ab"}, 0},
		{"enum miss", map[string]any{"level": "medium"}, 1},
		{"below minimum", map[string]any{"count": 0.0}, 1},
		{"above maximum", map[string]any{"count": 11.0}, 1},
		{"too short", map[string]any{"code": "a"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, s.Check(tt.value), tt.violations)
		})
	}
}

func TestCheckIntegerAcceptsWholeNumbers(t *testing.T) {
	s := &Schema{Type: "integer"}
	assert.Empty(t, s.Check(float64(3)))
	assert.NotEmpty(t, s.Check(float64(3.5)))
}

func TestCheckFormats(t *testing.T) {
	s := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"id":    {Type: "string", Format: "uuid"},
			"when":  {Type: "string", Format: "date-time"},
			"email": {Type: "string", Format: "email"},
		},
	}

	valid := map[string]any{
		"id":    "6a8a51b2-5bb1-4cf0-a17d-2f7af25c5f3a",
		"when":  "2026-08-23T10:00:00Z",
		"email": "ops@example.com",
	}
	assert.Empty(t, s.Check(valid))

	invalid := map[string]any{
		"id":    "not-a-uuid",
		"when":  "yesterday",
		"email": "nope",
	}
	assert.Len(t, s.Check(invalid), 3)
}

func TestCheckAdditionalProperties(t *testing.T) {
	strict := false
	s := &Schema{
		Type:                 "object",
		Properties:           map[string]*Schema{"a": {Type: "number"}},
		AdditionalProperties: &strict,
	}

	assert.Empty(t, s.Check(map[string]any{"a": 1.0}))
	assert.Len(t, s.Check(map[string]any{"a": 1.0, "b": 2.0}), 1)
}
