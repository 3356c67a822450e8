package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhabedank/structgen/internal/record"
	"github.com/dhabedank/structgen/internal/tui"
)

var runsLimit int

// RunsCmd represents the runs command.
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent generation runs",
	RunE:  runRuns,
}

func init() {
	RunsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Number of runs to show")
}

func runRuns(cmd *cobra.Command, args []string) error {
	path, err := record.DefaultPath()
	if err != nil {
		return err
	}
	store, err := record.Open(path)
	if err != nil {
		return err
	}

	runs, err := store.Recent(runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Println(tui.TitleStyle.Render("Recent runs"))
	for _, run := range runs {
		status := tui.SuccessStyle.Render("✓")
		if !run.Success {
			status = tui.ErrorStyle.Render("✗")
		}
		mode := "direct"
		if run.UsedFallback {
			mode = "fallback"
		}
		fmt.Printf("%s %s  %s  %s  %s  %s tokens  %s\n",
			status,
			run.Timestamp.Local().Format("2006-01-02 15:04"),
			tui.ModelStyle.Render(run.Model),
			run.Adapter,
			mode,
			tui.FormatTokens(run.InputTokens+run.OutputTokens),
			tui.CostStyle.Render(tui.FormatCost(run.Cost)),
		)
		if run.Error != "" {
			fmt.Printf("    %s\n", tui.HelpStyle.Render(run.Error))
		}
	}

	return nil
}
