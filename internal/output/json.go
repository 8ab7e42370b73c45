package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes the report value itself as JSON.
type JSONFormatter struct {
	indent bool
}

func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

func (f *JSONFormatter) Format(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Formatter renders a report to w.
type Formatter interface {
	Format(w io.Writer, r Report) error
}

// NewFormatter picks the formatter for format (console or json).
func NewFormatter(format string, limit int) (Formatter, error) {
	switch format {
	case "console", "":
		return NewConsoleFormatter(limit), nil
	case "json":
		return NewJSONFormatter(true), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
