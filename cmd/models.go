package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/structgen/internal/llm"
	"github.com/dhabedank/structgen/internal/tui"
)

// ModelsCmd represents the models command.
var ModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available adapters and models",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	adapters := llm.ListAvailableAdapters(llm.DefaultConfig())
	fmt.Println(tui.TitleStyle.Render("Adapters"))
	if len(adapters) == 0 {
		fmt.Println("  none available - install Claude Code, Codex, or set ANTHROPIC_API_KEY")
	}
	for _, name := range adapters {
		fmt.Printf("  %s %s\n", tui.SuccessStyle.Render("✓"), name)
	}

	available := llm.AvailableModels()
	for _, provider := range []string{"anthropic", "openai"} {
		models, ok := available[provider]
		if !ok {
			continue
		}
		fmt.Println()
		fmt.Println(tui.SubtitleStyle.Render(provider))
		for _, m := range models {
			pricing := llm.PricingFor(m.ID)
			fmt.Printf("  %s  %s\n", tui.ModelStyle.Render(m.ID), m.Name)
			fmt.Printf("    %s\n", tui.HelpStyle.Render(fmt.Sprintf("%s - $%.2f/$%.2f per MTok", m.Description, pricing.InputPer1M, pricing.OutputPer1M)))
		}
	}

	return nil
}
