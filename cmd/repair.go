package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/structgen/internal/output"
	"github.com/dhabedank/structgen/internal/repair"
	"github.com/dhabedank/structgen/internal/schema"
)

var (
	repairSchemaPath  string
	repairArrayFields []string
	repairOutputPath  string
)

// RepairCmd represents the repair command.
var RepairCmd = &cobra.Command{
	Use:   "repair <raw-file>",
	Short: "Run the repair pipeline over a saved completion",
	Long: `Run the offline repair pipeline over a saved model completion.

The stages run in the same fixed order the generator uses: extract the
JSON substring, normalize pseudo-XML parameter tags, fix comma placement,
then optionally coerce stringified array fields and validate against a
schema. No model call is made. Useful for debugging the dumps the
generator saves when repair is exhausted.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func init() {
	RepairCmd.Flags().StringVar(&repairSchemaPath, "schema", "", "Schema file to validate the repaired JSON against")
	RepairCmd.Flags().StringArrayVar(&repairArrayFields, "array-field", nil, "Dotted path that must be an array (repeatable)")
	RepairCmd.Flags().StringVarP(&repairOutputPath, "output", "o", "", "Output file (default: stdout)")
}

func runRepair(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read raw file: %w", err)
	}

	candidate := repair.Extract(string(raw))
	candidate = repair.NormalizeTags(candidate)
	candidate = repair.FixPunctuation(candidate)

	doc := []byte(candidate)
	if !json.Valid(doc) {
		return fmt.Errorf("repaired text is still not valid JSON")
	}

	if len(repairArrayFields) > 0 {
		doc = repair.CoerceArrays(doc, repairArrayFields)
	}

	if repairSchemaPath != "" {
		s, err := schema.Load(repairSchemaPath)
		if err != nil {
			return err
		}
		if err := s.Validate(doc); err != nil {
			return fmt.Errorf("repaired JSON failed validation: %w", err)
		}
		fmt.Println("Repaired JSON is schema-valid")
	}

	writer := &output.Writer{Path: repairOutputPath}
	return writer.Write(doc)
}
