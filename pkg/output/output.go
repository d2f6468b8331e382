package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/term"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Out receives everything this package prints.
var Out io.Writer = color.Output

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatText  OutputFormat = "text"
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	switch config.GetString("output.format") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "table" || format == "text"
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintJSON writes data as indented JSON.
func PrintJSON(data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Out, string(b))
	return err
}

// PrintList outputs rows as a table, or items as JSON when the JSON format is
// configured. Text and table formats both render the table.
func PrintList(items interface{}, headers []string, rows [][]string) error {
	if GetOutputFormat() == FormatJSON {
		return PrintJSON(items)
	}
	PrintTable(headers, rows)
	return nil
}

// PrintRecord outputs an ordered list of fields, or data as JSON.
func PrintRecord(data interface{}, fields [][2]string) error {
	if GetOutputFormat() == FormatJSON {
		return PrintJSON(data)
	}
	if GetOutputFormat() == FormatTable {
		rows := make([][]string, 0, len(fields))
		for _, f := range fields {
			rows = append(rows, []string{f[0], f[1]})
		}
		PrintTable([]string{"Field", "Value"}, rows)
		return nil
	}
	bold := color.New(color.Bold)
	for _, f := range fields {
		bold.Fprint(Out, f[0]+": ")
		fmt.Fprintln(Out, f[1])
	}
	return nil
}

// PrintTable prints rows aligned under bold headers.
func PrintTable(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)

	for i, h := range headers {
		bold.Fprint(w, h)
		if i < len(headers)-1 {
			fmt.Fprint(w, "\t")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	color.New(color.FgGreen).Fprintf(Out, msg+"\n", args...)
}

// PrintError prints an error message
func PrintError(msg string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(Out, "Error: "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	color.New(color.FgCyan).Fprintf(Out, msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(Out, "Warning: "+msg+"\n", args...)
}

// Pluralize picks the form for n: one for 1, few for 2 to 4, many otherwise.
func Pluralize(n int, one, few, many string) string {
	switch {
	case n == 1:
		return one
	case n >= 2 && n <= 4:
		return few
	default:
		return many
	}
}

// Count formats n with the matching form, e.g. "3 apps".
func Count(n int, one, few, many string) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, one, few, many))
}

var pillStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

// Pills renders labels as a row of bordered tags. Outside a terminal the
// labels are bracketed on a single line.
func Pills(labels ...string) string {
	if len(labels) == 0 {
		return ""
	}
	if !IsTerminal() {
		parts := make([]string, len(labels))
		for i, l := range labels {
			parts[i] = "[" + l + "]"
		}
		return strings.Join(parts, " ")
	}
	rendered := make([]string, len(labels))
	for i, l := range labels {
		rendered[i] = pillStyle.Render(l)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, rendered...)
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
