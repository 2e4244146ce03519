package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// printJSON writes a value as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printHeader renders the styled section header above a table.
func printHeader(text string) {
	fmt.Println(headerStyle.Render(text))
	fmt.Println()
}

// newTable returns a tabwriter with styled column headers already
// written. Call flush on the returned writer when done.
func newTable(columns ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	styled := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = titleStyle.Render(c)
	}
	_, _ = fmt.Fprintln(w, strings.Join(styled, "\t")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))
	return w
}

// truncate shortens long display values so tables stay readable.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
