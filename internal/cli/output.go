package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	RefreshedAt time.Time `json:"refreshed_at"`
	GroupCount  int       `json:"group_count"`
	Logs        []string  `json:"logs,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result, verbose)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult, verbose bool) error {
	if !verbose {
		trimmed := *result
		trimmed.Logs = nil
		result = &trimmed
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.GroupCount == 0 {
		fmt.Fprintln(w, "Refresh completed, no groups found.")
	} else {
		fmt.Fprintf(w, "Refreshed catalog: %d groups (as of %s)\n",
			result.GroupCount, result.RefreshedAt.UTC().Format(time.RFC3339))
	}

	if verbose && len(result.Logs) > 0 {
		fmt.Fprintln(w, "\nRun log:")
		for _, line := range result.Logs {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	return nil
}
