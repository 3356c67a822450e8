package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := Open(path)
	require.NoError(t, err)

	for i, model := range []string{"first", "second", "third"} {
		run := NewRun()
		run.Model = model
		run.InputTokens = (i + 1) * 100
		run.Success = true
		require.NoError(t, store.Append(run))
	}

	runs, err := store.Recent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "third", runs[0].Model)
	assert.Equal(t, "second", runs[1].Model)
	assert.Equal(t, 300, runs[0].InputTokens)
}

func TestStoreRecentEmptyLog(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "runs.jsonl"))
	require.NoError(t, err)

	runs, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	store, err := Open(path)
	require.NoError(t, err)

	good := NewRun()
	good.Model = "good"
	require.NoError(t, store.Append(good))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "good", runs[0].Model)
}

func TestNewRunHasIdentity(t *testing.T) {
	a := NewRun()
	b := NewRun()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}
