package cmd

import (
	"encoding/json"
	"fmt"
)

// OutputFormatter handles formatting command output as text or JSON,
// grounded on the original CLI's OutputFormatter but without its dryrun
// concept (battlesim has nothing to persist to disk mid-battle).
type OutputFormatter struct {
	JSON bool
}

// NewOutputFormatter creates a formatter based on the --json flag.
func NewOutputFormatter() *OutputFormatter {
	return &OutputFormatter{JSON: isJSONOutput()}
}

// PrintJSON marshals data as indented JSON.
func (f *OutputFormatter) PrintJSON(data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(b))
	return nil
}

// PrintText prints a pre-formatted string as-is.
func (f *OutputFormatter) PrintText(text string) error {
	fmt.Println(text)
	return nil
}

// Print dispatches to PrintJSON (data) or PrintText (the caller's
// pre-rendered text) depending on the --json flag.
func (f *OutputFormatter) Print(data any, text string) error {
	if f.JSON {
		return f.PrintJSON(data)
	}
	return f.PrintText(text)
}
