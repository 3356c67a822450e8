// Package structured turns a schema plus a prompt into a schema-valid
// object, recovering from malformed model output via the repair pipeline.
// Every non-error return is schema-valid; partial repair that still fails
// validation surfaces as the original first-attempt error.
package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/dhabedank/structgen/internal/llm"
	"github.com/dhabedank/structgen/internal/repair"
	"github.com/dhabedank/structgen/internal/schema"
)

// Request describes one structured generation call.
type Request struct {
	Model       string
	Schema      *schema.Schema
	Prompt      string
	Temperature float64
	MaxTokens   int

	// ArrayFieldPaths are dotted paths where a JSON array is required but
	// may arrive as a stringified array. Declared by the caller; the
	// schema alone cannot express this.
	ArrayFieldPaths []string
}

// Result is a validated generation outcome.
type Result struct {
	// Value is the decoded object, guaranteed to satisfy the schema.
	Value any

	// JSON is the canonical bytes Value was validated from.
	JSON []byte

	// Usage sums the token counts of every model call made (one on the
	// fast path, two when the fallback ran). Estimated for CLI adapters.
	Usage llm.Usage

	// Cost is the USD cost of Usage at the model's pricing.
	Cost float64

	// UsedFallback reports whether the repair pipeline produced the result.
	UsedFallback bool

	Adapter string
	Model   string
}

// Generator orchestrates schema-constrained generation with repair
// fallback. It is the sole caller of the repair stages, always in the
// fixed order Extract, NormalizeTags, FixPunctuation, CoerceArrays.
type Generator struct {
	adapter llm.Adapter
	logger  *zap.Logger

	// OnStage, when set, is called as each model call begins: with
	// StageDirect before the schema-constrained attempt and StageFallback
	// before the plain-text repair call. Used by interactive displays.
	OnStage func(stage string)
}

// Stage names reported through OnStage.
const (
	StageDirect   = "direct attempt"
	StageFallback = "repair fallback"
)

// New creates a Generator. A nil logger disables diagnostics.
func New(adapter llm.Adapter, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{adapter: adapter, logger: logger}
}

// Generate runs the direct schema-constrained attempt and, when that fails
// with a validation-shaped error, the full repair fallback. At most two
// model calls; the second is issued only after the first is confirmed
// failed. Provider failures propagate immediately and never fall back.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("structured generation requires a schema")
	}

	result := &Result{
		Adapter:      g.adapter.Name(),
		Model:        req.Model,
		UsedFallback: false,
	}

	g.notifyStage(StageDirect)
	completion, err := g.adapter.Invoke(ctx, llm.Request{
		Model:       req.Model,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Schema:      req.Schema,
	})
	if err != nil {
		return nil, err
	}
	g.recordUsage(result, req.Prompt, completion)

	firstErr := g.validateInto(result, req.Schema, []byte(completion.Text))
	if firstErr == nil {
		return result, nil
	}

	if !isValidationShaped(firstErr) {
		return nil, firstErr
	}

	g.logger.Info("direct attempt failed validation, entering repair fallback",
		zap.String("adapter", result.Adapter),
		zap.String("model", req.Model),
		zap.Error(firstErr))

	if err := g.fallback(ctx, req, result, firstErr); err != nil {
		return nil, err
	}
	return result, nil
}

// fallback re-requests plain text and runs the repair pipeline. Any
// failure past the second model call surfaces as firstErr, the most
// diagnostic signal for the caller.
func (g *Generator) fallback(ctx context.Context, req Request, result *Result, firstErr error) error {
	g.notifyStage(StageFallback)
	prompt := req.Prompt + llm.JSONOnlyInstruction
	completion, err := g.adapter.Invoke(ctx, llm.Request{
		Model:       req.Model,
		Prompt:      prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		// The second call itself failing is a provider problem, not a
		// repair outcome.
		return err
	}
	g.recordUsage(result, prompt, completion)

	candidate := repair.Extract(completion.Text)
	g.logger.Debug("extracted candidate", zap.Int("len", len(candidate)))

	candidate = repair.NormalizeTags(candidate)
	g.logger.Debug("normalized tags", zap.Int("len", len(candidate)))

	candidate = repair.FixPunctuation(candidate)
	g.logger.Debug("repaired punctuation", zap.Int("len", len(candidate)))

	doc := []byte(candidate)
	if !json.Valid(doc) {
		g.dumpDebug(completion.Text, candidate)
		g.logger.Warn("repaired candidate still not valid JSON", zap.Error(firstErr))
		return firstErr
	}

	if len(req.ArrayFieldPaths) > 0 {
		doc = repair.CoerceArrays(doc, req.ArrayFieldPaths)
		g.logger.Debug("coerced array fields", zap.Strings("paths", req.ArrayFieldPaths))
	}

	if err := g.validateInto(result, req.Schema, doc); err != nil {
		g.dumpDebug(completion.Text, string(doc))
		g.logger.Warn("repaired candidate failed re-validation", zap.Error(err))
		return firstErr
	}

	result.UsedFallback = true
	g.logger.Info("repair fallback recovered a schema-valid object")
	return nil
}

func (g *Generator) notifyStage(stage string) {
	if g.OnStage != nil {
		g.OnStage(stage)
	}
}

// validateInto validates doc against the schema and, on success, stores
// the decoded value and canonical bytes on the result.
func (g *Generator) validateInto(result *Result, s *schema.Schema, doc []byte) error {
	if err := s.Validate(doc); err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(doc, &value); err != nil {
		return fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	result.Value = value
	result.JSON = doc
	return nil
}

// recordUsage accumulates the call's token counts, estimating from text
// length when the adapter reported none, and keeps Cost current.
func (g *Generator) recordUsage(result *Result, prompt string, completion *llm.Completion) {
	usage := completion.Usage
	if usage == nil {
		usage = &llm.Usage{
			InputTokens:  llm.EstimateTokens(len(prompt)),
			OutputTokens: llm.EstimateTokens(len(completion.Text)),
		}
	}
	result.Usage.Add(usage)
	result.Cost = result.Usage.Cost(result.Model)
}

// dumpDebug saves the raw completion and the repaired candidate to a temp
// file for postmortem. Best-effort only.
func (g *Generator) dumpDebug(raw, repaired string) {
	debugFile := filepath.Join(os.TempDir(), fmt.Sprintf("structgen-repair-%d.txt", time.Now().UnixNano()))
	content := fmt.Sprintf("--- RAW COMPLETION ---\n%s\n--- AFTER REPAIR ---\n%s\n", raw, repaired)
	if err := os.WriteFile(debugFile, []byte(content), 0644); err == nil {
		g.logger.Info("saved repair debug dump", zap.String("path", debugFile))
	}
}
