package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := &Writer{Path: path}

	require.NoError(t, w.Write([]byte(`{"a":1,"b":[2,3]}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// tidwall/pretty indents the document
	assert.Contains(t, string(data), "\"a\": 1")
	assert.Contains(t, string(data), "\"b\": [2, 3]")
}

func TestWriterDryRunWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := &Writer{Path: path, DryRun: true}

	require.NoError(t, w.Write([]byte(`{"a":1}`)))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
