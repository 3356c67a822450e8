package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := `
type: object
required:
  - personas
properties:
  personas:
    type: array
    items:
      type: object
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"personas"}, s.Required)
	require.Contains(t, s.Properties, "personas")
	assert.Equal(t, "array", s.Properties["personas"].Type)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	content := `{"type": "object", "properties": {"name": {"type": "string"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "string", s.Properties["name"].Type)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSchemaJSONRendersForPrompts(t *testing.T) {
	s := &Schema{Type: "object", Required: []string{"a"}}
	data, err := s.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type": "object"`)
	assert.Contains(t, string(data), `"required"`)
}
