package llm

import (
	"context"
	"fmt"

	"github.com/dhabedank/structgen/internal/schema"
)

// Adapter is the interface all LLM adapters must implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// IsAvailable checks if this adapter can be used (CLI installed, API key set, etc.)
	IsAvailable() bool

	// Invoke sends the request to the model and returns the raw completion.
	// When req.Schema is set the adapter constrains output best-effort by
	// embedding the schema in the system prompt; when nil, plain text.
	Invoke(ctx context.Context, req Request) (*Completion, error)
}

// Request describes a single model call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int

	// Schema, when non-nil, asks the adapter to constrain output to this
	// shape. Adapters never validate against it; that is the caller's job.
	Schema *schema.Schema
}

// Completion is the raw result of one model call.
type Completion struct {
	Text string

	// Usage is nil when the adapter cannot report real token counts
	// (CLI adapters); callers fall back to estimation.
	Usage *Usage
}

// Usage holds token counts for one or more model calls.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Add accumulates another usage into this one.
func (u *Usage) Add(other *Usage) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// ProviderError wraps a transport-level failure from an adapter: network,
// auth, rate limits, a missing CLI. These are never retried and never
// trigger the repair fallback.
type ProviderError struct {
	Adapter string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Adapter, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Config holds configuration for LLM adapters.
type Config struct {
	// PreferCLI prefers CLI tools (claude, codex) over API when available.
	PreferCLI bool

	// Model specifies which model to use (optional, adapter chooses default).
	Model string

	// APIKey for direct API access (optional if CLI is used).
	APIKey string

	// MaxTokens limits response length.
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PreferCLI: true, // Use CLI tools when available (already authenticated)
		MaxTokens: 16384,
	}
}
