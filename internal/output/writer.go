// Package output writes validated JSON documents to stdout, a file, or a
// dry-run preview.
package output

import (
	"fmt"
	"os"

	"github.com/tidwall/pretty"
)

// Writer renders a validated JSON document to its destination.
type Writer struct {
	// Path is the output file; empty means stdout.
	Path string

	// DryRun previews the document without writing anything.
	DryRun bool
}

// Write formats doc and sends it to the configured destination.
func (w *Writer) Write(doc []byte) error {
	formatted := pretty.Pretty(doc)

	if w.DryRun {
		fmt.Println("[dry-run] Would write:")
		fmt.Print(string(formatted))
		return nil
	}

	if w.Path != "" {
		if err := os.WriteFile(w.Path, formatted, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("Output written to %s\n", w.Path)
		return nil
	}

	fmt.Print(string(formatted))
	return nil
}
