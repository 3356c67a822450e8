package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/structgen/internal/llm"
	"github.com/dhabedank/structgen/internal/output"
	"github.com/dhabedank/structgen/internal/record"
	"github.com/dhabedank/structgen/internal/schema"
	"github.com/dhabedank/structgen/internal/structured"
	"github.com/dhabedank/structgen/internal/tui"
)

var (
	schemaPath  string
	llmProvider string
	llmModel    string
	temperature float64
	maxTokens   int
	arrayFields []string // dotted paths that must be arrays
	outputPath  string
	dryRun      bool
	noRecord    bool
	configFile  string
	debugLog    bool
)

// GenerateCmd represents the generate command.
var GenerateCmd = &cobra.Command{
	Use:   "generate <prompt-file>",
	Short: "Generate a schema-valid JSON object from a prompt",
	Long: `Generate a JSON object conforming to a schema from a prompt file.

The generator asks the model for schema-constrained output first. When the
response is malformed (markdown fences, pseudo-XML tags, missing commas,
stringified arrays), it re-requests plain text and runs the repair
pipeline before re-validating. Every successful result is schema-valid.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	// Generation options
	GenerateCmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (YAML or JSON, required)")
	GenerateCmd.Flags().StringVarP(&llmProvider, "llm", "l", "auto", "LLM provider (auto/claude-cli/codex-cli/anthropic-api)")
	GenerateCmd.Flags().StringVarP(&llmModel, "model", "m", "", "Model to use (provider-specific)")
	GenerateCmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "Sampling temperature (0 = provider default)")
	GenerateCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Response token limit (0 = provider default)")
	GenerateCmd.Flags().StringArrayVar(&arrayFields, "array-field", nil, "Dotted path that must be an array, may arrive stringified (repeatable)")

	// Output options
	GenerateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: stdout)")
	GenerateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing")
	GenerateCmd.Flags().BoolVar(&noRecord, "no-record", false, "Skip appending a run record")

	// Config file and diagnostics
	GenerateCmd.Flags().StringVar(&configFile, "config", "", "Config file (default: .structgen.yaml)")
	GenerateCmd.Flags().BoolVar(&debugLog, "debug", false, "Enable debug logging")

	_ = GenerateCmd.MarkFlagRequired("schema")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	promptPath := args[0]

	// Load config file (flags override config file values)
	if err := loadConfig(cmd); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	promptData, err := os.ReadFile(promptPath)
	if err != nil {
		return fmt.Errorf("failed to read prompt file: %w", err)
	}

	s, err := schema.Load(schemaPath)
	if err != nil {
		return err
	}

	adapter, err := createLLMAdapter()
	if err != nil {
		return fmt.Errorf("failed to create LLM adapter: %w", err)
	}
	fmt.Printf("Using LLM: %s\n", adapter.Name())

	logger := zap.NewNop()
	if debugLog {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()
	}

	generator := structured.New(adapter, logger)
	modelName := displayModel(adapter)
	req := structured.Request{
		Model:           llmModel,
		Schema:          s,
		Prompt:          string(promptData),
		Temperature:     temperature,
		MaxTokens:       maxTokens,
		ArrayFieldPaths: arrayFields,
	}

	var result *structured.Result
	var genErr error

	if isatty.IsTerminal(os.Stdout.Fd()) && !debugLog {
		prog := tea.NewProgram(tui.NewProgressDisplay())
		generator.OnStage = func(stage string) {
			prog.Send(tui.StageStartMsg{Name: stage, Model: modelName})
		}
		go func() {
			result, genErr = generator.Generate(context.Background(), req)
			if result != nil {
				prog.Send(tui.StageDoneMsg{Usage: result.Usage})
			}
			prog.Send(tui.GenerationDoneMsg{})
		}()
		if _, err := prog.Run(); err != nil {
			return fmt.Errorf("progress display failed: %w", err)
		}
	} else {
		start := time.Now()
		generator.OnStage = func(stage string) {
			fmt.Println(tui.RenderStageStart(stage, modelName))
		}
		result, genErr = generator.Generate(context.Background(), req)
		if genErr == nil {
			fmt.Println(tui.RenderStageComplete("generate", modelName, time.Since(start), result.Usage))
		}
	}

	if !noRecord {
		appendRun(adapter.Name(), result, genErr)
	}

	if genErr != nil {
		return fmt.Errorf("generation failed: %w", genErr)
	}

	if result.UsedFallback {
		fmt.Println(tui.WarningStyle.Render("!") + " Direct attempt failed validation; result recovered via repair pipeline")
	}

	writer := &output.Writer{Path: outputPath, DryRun: dryRun}
	if err := writer.Write(result.JSON); err != nil {
		return err
	}

	fmt.Printf("\nTokens: %s in / %s out  Cost: %s\n",
		tui.FormatTokens(result.Usage.InputTokens),
		tui.FormatTokens(result.Usage.OutputTokens),
		tui.CostStyle.Render(tui.FormatCost(result.Cost)),
	)

	return nil
}

// appendRun best-effort records the run; failures never block the user.
func appendRun(adapterName string, result *structured.Result, genErr error) {
	path, err := record.DefaultPath()
	if err != nil {
		return
	}
	store, err := record.Open(path)
	if err != nil {
		return
	}

	run := record.NewRun()
	run.Adapter = adapterName
	run.Model = llmModel
	run.Success = genErr == nil
	if genErr != nil {
		run.Error = genErr.Error()
	}
	if result != nil {
		run.Model = result.Model
		run.UsedFallback = result.UsedFallback
		run.InputTokens = result.Usage.InputTokens
		run.OutputTokens = result.Usage.OutputTokens
		run.Cost = result.Cost
	}
	_ = store.Append(run)
}

func displayModel(adapter llm.Adapter) string {
	if llmModel != "" {
		return llmModel
	}
	return adapter.Name() + " default"
}

// Config file structure
type configFileData struct {
	LLM         string  `yaml:"llm"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func loadConfig(cmd *cobra.Command) error {
	// Find config file
	configPath := configFile
	if configPath == "" {
		// Check .structgen.yaml in current dir
		if _, err := os.Stat(".structgen.yaml"); err == nil {
			configPath = ".structgen.yaml"
		} else if home, err := os.UserHomeDir(); err == nil {
			// Check ~/.structgen.yaml
			homePath := filepath.Join(home, ".structgen.yaml")
			if _, err := os.Stat(homePath); err == nil {
				configPath = homePath
			}
		}
	}

	if configPath == "" {
		return nil // No config file, use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg configFileData
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	fmt.Printf("Loaded config from: %s\n", configPath)

	// Apply config values only if flags weren't explicitly set
	if !cmd.Flags().Changed("llm") && cfg.LLM != "" {
		llmProvider = cfg.LLM
	}
	if !cmd.Flags().Changed("model") && cfg.Model != "" {
		llmModel = cfg.Model
	}
	if !cmd.Flags().Changed("temperature") && cfg.Temperature > 0 {
		temperature = cfg.Temperature
	}
	if !cmd.Flags().Changed("max-tokens") && cfg.MaxTokens > 0 {
		maxTokens = cfg.MaxTokens
	}

	return nil
}

func createLLMAdapter() (llm.Adapter, error) {
	config := llm.Config{
		Model:     llmModel,
		MaxTokens: maxTokens,
		PreferCLI: true,
	}

	switch llmProvider {
	case "auto":
		return llm.DetectBestAdapter(config)
	case "claude-cli":
		adapter := llm.NewClaudeCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Claude CLI not available - install Claude Code")
		}
		return adapter, nil
	case "codex-cli":
		adapter := llm.NewCodexCLIAdapter(config)
		if !adapter.IsAvailable() {
			return nil, fmt.Errorf("Codex CLI not available - install Codex")
		}
		return adapter, nil
	case "anthropic-api":
		return llm.NewAnthropicAPIAdapter(config)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", llmProvider)
	}
}
