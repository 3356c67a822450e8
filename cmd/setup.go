package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/structgen/internal/llm"
	"github.com/dhabedank/structgen/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Configure structgen with an interactive wizard.

The wizard selects a default adapter and model for generation.
Configuration is saved to ~/.structgen.yaml`,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

// setupConfig holds the configuration being built.
type setupConfig struct {
	LLM   string `yaml:"llm,omitempty"`
	Model string `yaml:"model,omitempty"`
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Handle reset
	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	adapters := llm.ListAvailableAdapters(llm.DefaultConfig())
	models := llm.AllModels()
	if len(adapters) == 0 || len(models) == 0 {
		return fmt.Errorf("no LLM providers detected. Please install Claude Code or Codex CLI, or set ANTHROPIC_API_KEY")
	}

	// Run the wizard
	p := tea.NewProgram(newSetupModel(adapters, models))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	finalModel := m.(setupModel)
	if finalModel.cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	// Save configuration
	config := setupConfig{
		LLM:   finalModel.selectedAdapter,
		Model: finalModel.selectedModel,
	}

	if err := saveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Adapter: %s\n", tui.ModelStyle.Render(config.LLM))
	fmt.Printf("  Model:   %s\n", tui.ModelStyle.Render(config.Model))

	return nil
}

func getConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".structgen.yaml"
	}
	return filepath.Join(home, ".structgen.yaml")
}

func saveConfig(path string, config setupConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Bubble Tea model for the setup wizard

type setupModel struct {
	step            int // 0=adapter, 1=model
	lists           []list.Model
	selectedAdapter string
	selectedModel   string
	cancelled       bool
	width           int
	height          int
}

type adapterItem struct {
	name string
}

func (a adapterItem) Title() string       { return a.name }
func (a adapterItem) Description() string { return adapterDescription(a.name) }
func (a adapterItem) FilterValue() string { return a.name }

func adapterDescription(name string) string {
	switch name {
	case "claude-cli":
		return "Claude Code CLI (already authenticated)"
	case "codex-cli":
		return "Codex CLI"
	case "anthropic-api":
		return "Anthropic API (uses ANTHROPIC_API_KEY)"
	default:
		return ""
	}
}

type modelItem struct {
	info llm.ModelInfo
}

func (m modelItem) Title() string       { return m.info.Name }
func (m modelItem) Description() string { return m.info.Description }
func (m modelItem) FilterValue() string { return m.info.Name }

func newSetupModel(adapters []string, models []llm.ModelInfo) setupModel {
	adapterItems := make([]list.Item, len(adapters))
	for i, a := range adapters {
		adapterItems[i] = adapterItem{name: a}
	}
	modelItems := make([]list.Item, len(models))
	for i, m := range models {
		modelItems[i] = modelItem{info: m}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("#9b59b6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("#95a5a6"))

	lists := make([]list.Model, 2)
	items := [][]list.Item{adapterItems, modelItems}
	titles := []string{"Select Default Adapter", "Select Default Model"}
	for i := 0; i < 2; i++ {
		l := list.New(items[i], delegate, 60, 14)
		l.Title = titles[i]
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.Styles.Title = tui.TitleStyle
		lists[i] = l
	}

	return setupModel{
		step:  0,
		lists: lists,
	}
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.lists {
			m.lists[i].SetWidth(msg.Width)
			m.lists[i].SetHeight(msg.Height - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			switch m.step {
			case 0:
				if item, ok := m.lists[0].SelectedItem().(adapterItem); ok {
					m.selectedAdapter = item.name
				}
			case 1:
				if item, ok := m.lists[1].SelectedItem().(modelItem); ok {
					m.selectedModel = item.info.ID
				}
			}

			// Move to next step or finish
			m.step++
			if m.step >= 2 {
				return m, tea.Quit
			}
			return m, nil

		case "left", "h":
			if m.step > 0 {
				m.step--
			}
			return m, nil
		}
	}

	// Update current list
	var cmd tea.Cmd
	m.lists[m.step], cmd = m.lists[m.step].Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled {
		return ""
	}

	// Progress indicator
	steps := []string{"Adapter", "Model"}
	progress := "\n  "
	for i, s := range steps {
		if i == m.step {
			progress += tui.SelectedStyle.Render(fmt.Sprintf("[%s]", s))
		} else if i < m.step {
			progress += tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", s))
		} else {
			progress += tui.UnselectedStyle.Render(fmt.Sprintf("○ %s", s))
		}
		if i < len(steps)-1 {
			progress += " → "
		}
	}
	progress += "\n\n"

	// Help text
	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • ←: back • q: quit")

	return progress + m.lists[m.step].View() + help
}
