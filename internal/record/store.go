// Package record keeps an append-only JSONL log of generation runs at
// ~/.structgen/runs.jsonl, for the runs command and cost summaries.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded generation call.
type Run struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Adapter      string    `json:"adapter"`
	Model        string    `json:"model"`
	UsedFallback bool      `json:"used_fallback"`
	InputTokens  int       `json:"input_tokens"`
	OutputTokens int       `json:"output_tokens"`
	Cost         float64   `json:"cost"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
}

// NewRun creates a run record with a fresh ID and the current time.
func NewRun() Run {
	return Run{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

// Store appends and reads run records from a JSONL file.
type Store struct {
	path string
}

// DefaultPath returns ~/.structgen/runs.jsonl.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".structgen", "runs.jsonl"), nil
}

// Open creates a store at the given path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create record directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Append writes one run record to the end of the log.
func (s *Store) Append(run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open record log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append run record: %w", err)
	}
	return nil
}

// Recent returns the last n runs, newest first. Unparsable lines are
// skipped so one corrupt record never hides the rest of the log.
func (s *Store) Recent(n int) ([]Run, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open record log: %w", err)
	}
	defer f.Close()

	var runs []Run
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var run Run
		if err := json.Unmarshal(scanner.Bytes(), &run); err != nil {
			continue
		}
		runs = append(runs, run)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record log: %w", err)
	}

	// newest first
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if n > 0 && len(runs) > n {
		runs = runs[:n]
	}
	return runs, nil
}
