package llm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CodexCLIAdapter uses the Codex CLI for generation.
type CodexCLIAdapter struct {
	model string
}

// NewCodexCLIAdapter creates a Codex CLI adapter.
func NewCodexCLIAdapter(config Config) *CodexCLIAdapter {
	model := config.Model
	if model == "" {
		model = "o3" // Default to o3 for best reasoning
	}
	return &CodexCLIAdapter{model: model}
}

func (a *CodexCLIAdapter) Name() string {
	return "codex-cli"
}

// IsAvailable checks if the codex CLI is installed.
func (a *CodexCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("codex")
	return err == nil
}

func (a *CodexCLIAdapter) Invoke(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	system := req.System
	if system == "" {
		system = BuildSystemPrompt(req.Schema)
	}

	// Codex has no separate system prompt channel; combine both.
	combinedPrompt := fmt.Sprintf("SYSTEM INSTRUCTIONS:\n%s\n\nUSER REQUEST:\n%s", system, req.Prompt)

	cmd := exec.CommandContext(ctx, "codex",
		"--model", model,
		"--quiet", // Less verbose output
	)
	cmd.Stdin = strings.NewReader(combinedPrompt)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("codex CLI failed: %s", string(exitErr.Stderr))}
		}
		return nil, &ProviderError{Adapter: a.Name(), Err: fmt.Errorf("codex CLI failed: %w", err)}
	}

	return &Completion{Text: string(output)}, nil
}
