package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dhabedank/structgen/internal/llm"
)

// StageInfo holds information about one generation stage (the direct
// attempt, or the repair fallback).
type StageInfo struct {
	Name       string
	Model      string
	StartTime  time.Time
	EndTime    time.Time
	IsComplete bool
	Usage      llm.Usage
}

// Messages driving the progress display. Senders outside the Bubble Tea
// loop deliver these via Program.Send so all state changes happen inside
// Update.

// StageStartMsg begins a new stage; a still-running stage is completed
// without usage first.
type StageStartMsg struct {
	Name  string
	Model string
}

// StageDoneMsg completes the current stage with its usage.
type StageDoneMsg struct {
	Usage llm.Usage
}

// GenerationDoneMsg ends the display; the final frame is the summary.
type GenerationDoneMsg struct{}

// ProgressDisplay is a Bubble Tea model for showing generation progress.
type ProgressDisplay struct {
	spinner    spinner.Model
	stages     []StageInfo
	currentIdx int
	isRunning  bool
	quitting   bool
}

// NewProgressDisplay creates a new progress display.
func NewProgressDisplay() *ProgressDisplay {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &ProgressDisplay{
		spinner:    s,
		stages:     []StageInfo{},
		currentIdx: -1,
		isRunning:  false,
	}
}

// Init implements tea.Model.
func (p *ProgressDisplay) Init() tea.Cmd {
	return p.spinner.Tick
}

// Update implements tea.Model.
func (p *ProgressDisplay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StageStartMsg:
		if p.isRunning {
			p.completeStage(llm.Usage{})
		}
		p.stages = append(p.stages, StageInfo{
			Name:      msg.Name,
			Model:     msg.Model,
			StartTime: time.Now(),
		})
		p.currentIdx = len(p.stages) - 1
		p.isRunning = true
		return p, nil

	case StageDoneMsg:
		p.completeStage(msg.Usage)
		return p, nil

	case GenerationDoneMsg:
		p.quitting = true
		return p, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			p.quitting = true
			return p, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	}

	return p, nil
}

func (p *ProgressDisplay) completeStage(usage llm.Usage) {
	if p.currentIdx >= 0 && p.currentIdx < len(p.stages) {
		p.stages[p.currentIdx].IsComplete = true
		p.stages[p.currentIdx].EndTime = time.Now()
		p.stages[p.currentIdx].Usage = usage
	}
	p.isRunning = false
}

// View implements tea.Model.
func (p *ProgressDisplay) View() string {
	if p.quitting {
		return p.summaryView()
	}

	if p.currentIdx < 0 || p.currentIdx >= len(p.stages) {
		return ""
	}

	stage := p.stages[p.currentIdx]
	elapsed := time.Since(stage.StartTime).Truncate(time.Second)

	var status string
	if p.isRunning {
		status = p.spinner.View()
	} else {
		status = SuccessStyle.Render("✓")
	}

	return fmt.Sprintf("%s %s  %s  %s",
		status,
		StageStyle.Render(stage.Name),
		ModelStyle.Render(stage.Model),
		HelpStyle.Render(elapsed.String()),
	)
}

// summaryView shows the final summary after completion.
func (p *ProgressDisplay) summaryView() string {
	if len(p.stages) == 0 {
		return ""
	}
	return RenderSummary(p.stages)
}

// RenderStageStart returns a string for stage start (non-interactive mode).
func RenderStageStart(name, model string) string {
	return fmt.Sprintf("%s %s  %s",
		SpinnerStyle.Render("→"),
		StageStyle.Render(name),
		ModelStyle.Render(model),
	)
}

// RenderStageComplete returns a string for stage completion
// (non-interactive mode).
func RenderStageComplete(name, model string, duration time.Duration, usage llm.Usage) string {
	cost := usage.Cost(model)

	return fmt.Sprintf("%s %s  %s  %s tokens  %s",
		SuccessStyle.Render("✓"),
		StageStyle.Render(name),
		HelpStyle.Render(duration.Truncate(time.Second).String()),
		FormatTokens(usage.InputTokens+usage.OutputTokens),
		CostStyle.Render(FormatCost(cost)),
	)
}

// RenderSummary returns a summary string for a finished run.
func RenderSummary(stages []StageInfo) string {
	var total llm.Usage
	var totalCost float64
	var totalDuration time.Duration

	for _, stage := range stages {
		total.Add(&stage.Usage)
		totalCost += stage.Usage.Cost(stage.Model)
		if stage.IsComplete {
			totalDuration += stage.EndTime.Sub(stage.StartTime)
		}
	}

	return fmt.Sprintf("\n%s\n  Stages: %d  Tokens: %s in / %s out  Cost: %s  Time: %s\n",
		TitleStyle.Render("Generation Complete"),
		len(stages),
		FormatTokens(total.InputTokens),
		FormatTokens(total.OutputTokens),
		CostStyle.Render(FormatCost(totalCost)),
		totalDuration.Truncate(time.Second).String(),
	)
}
