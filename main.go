package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/structgen/cmd"
	"github.com/dhabedank/structgen/internal/version"
)

var buildVersion = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "structgen",
		Short:   "Generate schema-valid JSON from LLMs with repair guardrails",
		Version: buildVersion,
	}

	rootCmd.AddCommand(
		cmd.GenerateCmd,
		cmd.RepairCmd,
		cmd.ModelsCmd,
		cmd.RunsCmd,
		cmd.SetupCmd,
	)

	if version.IsFirstRun() {
		version.PrintFirstRunNotice()
	} else if result := version.CheckForUpdate(buildVersion); result != nil {
		version.PrintUpdateNotice(result)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
