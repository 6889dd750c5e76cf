package format

import (
	"fmt"
	"strings"
)

// Stat is one labelled value in a stats block.
type Stat struct {
	Label string
	Value string
}

// FormatStats formats a titled list of stats for display
func FormatStats(title string, stats []Stat, opts Options) string {
	parts := []string{ColorizeIf(title, BrightBlue, opts.UseColors), ""}

	width := 0
	for _, s := range stats {
		width = max(width, len(s.Label))
	}
	for _, s := range stats {
		parts = append(parts, formatStatLine(s.Label, s.Value, width, opts))
	}
	return strings.Join(parts, "\n")
}

// formatStatLine formats a statistics line with label and value
func formatStatLine(label, value string, width int, opts Options) string {
	padded := fmt.Sprintf("%-*s", width+1, label+":")
	return fmt.Sprintf("  %s %s", ColorizeIf(padded, BrightCyan, opts.UseColors), value)
}
