package llm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ClaudeCLIAdapter uses the Claude Code CLI for generation.
// This is preferred because users already have it authenticated.
type ClaudeCLIAdapter struct {
	model string
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	model := config.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	return &ClaudeCLIAdapter{model: model}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

func (a *ClaudeCLIAdapter) Invoke(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	system := req.System
	if system == "" {
		system = BuildSystemPrompt(req.Schema)
	}

	// Write the system prompt to a temp file (claude CLI reads files better
	// than stdin for long content)
	systemFile, err := os.CreateTemp("", "structgen-system-*.txt")
	if err != nil {
		return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("failed to create system prompt file: %w", err)}
	}
	defer os.Remove(systemFile.Name())

	if _, err := systemFile.WriteString(system); err != nil {
		return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("failed to write system prompt: %w", err)}
	}
	systemFile.Close()

	cmd := exec.CommandContext(ctx, "claude",
		"--model", model,
		"--system-prompt-file", systemFile.Name(),
		"--print",
		"--output-format", "text",
	)
	cmd.Stdin = strings.NewReader(req.Prompt)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("claude CLI failed: %s", string(exitErr.Stderr))}
		}
		return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("claude CLI failed: %w", err)}
	}

	// CLI reports no token counts; callers estimate from text length.
	return &Completion{Text: string(output)}, nil
}
