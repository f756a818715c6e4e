// Package formatter provides output formatting for the CLI: tabular,
// JSON and CSV rendering plus human-readable byte counts.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format represents an output format type
type Format string

const (
	// FormatTable is the default table format
	FormatTable Format = "table"
	// FormatJSON outputs data as JSON
	FormatJSON Format = "json"
	// FormatCSV outputs data as CSV
	FormatCSV Format = "csv"
)

// ParseFormat parses a format string into a Format type
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	default:
		return FormatTable
	}
}

// Output handles formatted output for the CLI
type Output struct {
	format Format
	writer io.Writer
}

// New creates a new Output formatter
func New(w io.Writer, format Format) *Output {
	return &Output{format: format, writer: w}
}

// PrintJSON outputs data as indented JSON
func (o *Output) PrintJSON(data any) error {
	enc := json.NewEncoder(o.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// PrintCSV outputs headers and rows as CSV
func (o *Output) PrintCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(o.writer)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// PrintTable outputs headers and rows as an aligned text table
func (o *Output) PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	o.printRow(headers, widths)
	for i, w := range widths {
		if i > 0 {
			fmt.Fprint(o.writer, "-+-")
		}
		fmt.Fprint(o.writer, strings.Repeat("-", w))
	}
	fmt.Fprintln(o.writer)
	for _, row := range rows {
		o.printRow(row, widths)
	}
}

// Print outputs rows in the configured format. jsonData is used for the
// JSON format; headers and rows serve the table and CSV formats.
func (o *Output) Print(headers []string, rows [][]string, jsonData any) error {
	switch o.format {
	case FormatJSON:
		return o.PrintJSON(jsonData)
	case FormatCSV:
		return o.PrintCSV(headers, rows)
	default:
		o.PrintTable(headers, rows)
		return nil
	}
}

func (o *Output) printRow(cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(o.writer, " | ")
		}
		fmt.Fprintf(o.writer, "%-*s", widths[i], cell)
	}
	fmt.Fprintln(o.writer)
}

// HumanBytes formats a byte count as a human-readable string with one
// decimal place, using 1024-based units.
func HumanBytes(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}
