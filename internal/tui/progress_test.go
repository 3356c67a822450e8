package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhabedank/structgen/internal/llm"
)

func update(t *testing.T, p *ProgressDisplay, msg tea.Msg) *ProgressDisplay {
	t.Helper()
	model, _ := p.Update(msg)
	next, ok := model.(*ProgressDisplay)
	if !ok {
		t.Fatalf("Update returned %T, want *ProgressDisplay", model)
	}
	return next
}

func TestProgressDisplayTracksStages(t *testing.T) {
	p := NewProgressDisplay()

	p = update(t, p, StageStartMsg{Name: "direct attempt", Model: "claude-sonnet-4-5"})
	view := p.View()
	if !strings.Contains(view, "direct attempt") {
		t.Errorf("view = %q, want it to mention the running stage", view)
	}
	if !strings.Contains(view, "claude-sonnet-4-5") {
		t.Errorf("view = %q, want it to mention the model", view)
	}

	// Starting a new stage completes the previous one.
	p = update(t, p, StageStartMsg{Name: "repair fallback", Model: "claude-sonnet-4-5"})
	if len(p.stages) != 2 {
		t.Fatalf("got %d stages, want 2", len(p.stages))
	}
	if !p.stages[0].IsComplete {
		t.Error("first stage should be complete after the second starts")
	}
	if !strings.Contains(p.View(), "repair fallback") {
		t.Errorf("view = %q, want the new stage shown", p.View())
	}

	p = update(t, p, StageDoneMsg{Usage: llm.Usage{InputTokens: 1200, OutputTokens: 400}})
	if !p.stages[1].IsComplete {
		t.Error("second stage should be complete")
	}
	if p.stages[1].Usage.InputTokens != 1200 {
		t.Errorf("stage usage input = %d, want 1200", p.stages[1].Usage.InputTokens)
	}
}

func TestProgressDisplayQuitsIntoSummary(t *testing.T) {
	p := NewProgressDisplay()
	p = update(t, p, StageStartMsg{Name: "direct attempt", Model: "claude-haiku-4-5"})
	p = update(t, p, StageDoneMsg{Usage: llm.Usage{InputTokens: 500, OutputTokens: 250}})

	model, cmd := p.Update(GenerationDoneMsg{})
	p = model.(*ProgressDisplay)
	if cmd == nil {
		t.Fatal("GenerationDoneMsg should return a quit command")
	}

	view := p.View()
	if !strings.Contains(view, "Generation Complete") {
		t.Errorf("final view = %q, want the summary heading", view)
	}
	if !strings.Contains(view, "Stages: 1") {
		t.Errorf("final view = %q, want the stage count", view)
	}
}

func TestRenderSummaryTotals(t *testing.T) {
	now := time.Now()
	stages := []StageInfo{
		{
			Name:       "direct attempt",
			Model:      "claude-sonnet-4-5-20250929",
			StartTime:  now.Add(-5 * time.Second),
			EndTime:    now.Add(-3 * time.Second),
			IsComplete: true,
			Usage:      llm.Usage{InputTokens: 800, OutputTokens: 200},
		},
		{
			Name:       "repair fallback",
			Model:      "claude-sonnet-4-5-20250929",
			StartTime:  now.Add(-3 * time.Second),
			EndTime:    now,
			IsComplete: true,
			Usage:      llm.Usage{InputTokens: 900, OutputTokens: 300},
		},
	}

	summary := RenderSummary(stages)
	if !strings.Contains(summary, "Stages: 2") {
		t.Errorf("summary = %q, want stage count", summary)
	}
	if !strings.Contains(summary, "1.7k in") {
		t.Errorf("summary = %q, want summed input tokens", summary)
	}
	if !strings.Contains(summary, "500 out") {
		t.Errorf("summary = %q, want summed output tokens", summary)
	}
}
