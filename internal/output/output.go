// Package output provides consistent CLI output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fruitful-search/fruitful/internal/search"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Results prints ranked search results as a readable text listing.
// The pid leads each entry so it can be fed straight to `open`.
func (w *Writer) Results(results []search.Result) {
	if len(results) == 0 {
		w.Status("", "no results")
		return
	}
	for i, r := range results {
		_, _ = fmt.Fprintf(w.out, "%2d. [%d] %s\n", i+1, r.PID, r.Name)

		var detail []string
		if r.Manufacturer != "" {
			detail = append(detail, r.Manufacturer)
		}
		if r.Model != "" {
			detail = append(detail, "model "+r.Model)
		}
		if r.MPN != "" {
			detail = append(detail, "mpn "+r.MPN)
		}
		if r.Price > 0 {
			detail = append(detail, fmt.Sprintf("$%.2f", r.Price))
		}
		detail = append(detail, "stock "+r.Stock.String())
		_, _ = fmt.Fprintf(w.out, "    %s\n", strings.Join(detail, " | "))

		if r.URL != "" {
			_, _ = fmt.Fprintf(w.out, "    %s\n", r.URL)
		}
	}
}

// ResultsJSON prints results as a JSON array, one machine-readable
// document for piping.
func (w *Writer) ResultsJSON(results []search.Result) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
