package version

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhabedank/structgen/internal/tui"
)

// IsFirstRun returns true if this appears to be the first run.
// Checks for existence of config file or first-run marker.
func IsFirstRun() bool {
	home, err := os.UserHomeDir()
	if err != nil {
		return false
	}

	// Check for config file
	configPath := filepath.Join(home, ".structgen.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return false // Config exists, not first run
	}

	// Check for first-run marker
	markerPath := filepath.Join(home, ".structgen", ".initialized")
	if _, err := os.Stat(markerPath); err == nil {
		return false // Already initialized
	}

	return true
}

// MarkInitialized creates the first-run marker.
func MarkInitialized() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}

	dir := filepath.Join(home, ".structgen")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}

	markerPath := filepath.Join(dir, ".initialized")
	_ = os.WriteFile(markerPath, []byte{}, 0644)
}

// PrintFirstRunNotice prints a welcome message for first-time users.
func PrintFirstRunNotice() {
	fmt.Println()
	fmt.Printf("%s Welcome to structgen!\n", tui.TitleStyle.Render("*"))
	fmt.Println()
	fmt.Println("  Quick start:")
	fmt.Printf("    1. Run %s to pick a default adapter and model\n", tui.ModelStyle.Render("structgen setup"))
	fmt.Printf("    2. Write a schema: %s\n", tui.ModelStyle.Render("schema.yaml"))
	fmt.Printf("    3. Generate: %s\n", tui.ModelStyle.Render("structgen generate prompt.txt --schema schema.yaml"))
	fmt.Println()
	fmt.Printf("  %s\n", tui.HelpStyle.Render("Run 'structgen --help' for all options"))
	fmt.Println()

	// Mark as initialized so we don't show this again
	MarkInitialized()
}
