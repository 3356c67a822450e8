package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/structgen/internal/schema"
)

func TestBuildSystemPromptWithoutSchema(t *testing.T) {
	got := BuildSystemPrompt(nil)
	assert.Contains(t, got, "ONLY valid JSON")
	assert.NotContains(t, got, "JSON schema")
}

func TestBuildSystemPromptEmbedsSchema(t *testing.T) {
	s := &schema.Schema{
		Type:     "object",
		Required: []string{"personas"},
		Properties: map[string]*schema.Schema{
			"personas": {Type: "array"},
		},
	}

	got := BuildSystemPrompt(s)
	require.Contains(t, got, "OUTPUT REQUIREMENTS")
	assert.Contains(t, got, `"required"`)
	assert.Contains(t, got, `"personas"`)
	assert.Contains(t, got, "never strings containing JSON")
}

func TestJSONOnlyInstructionForbidsMarkup(t *testing.T) {
	assert.Contains(t, JSONOnlyInstruction, "no markdown")
	assert.Contains(t, JSONOnlyInstruction, "ONLY the raw JSON")
}
