// Package output renders aggregated log statistics as text, JSON, or CSV.
package output

import (
	"context"
	"fmt"
	"io"

	"github.com/pmartel/loglyzer/pkg/stats"
)

// Formatter renders a statistics report in a specific format.
type Formatter interface {
	// Format renders the stats to the given writer.
	Format(ctx context.Context, s *stats.Stats, w io.Writer) error

	// Name returns the format name (text, json, csv).
	Name() string
}

// ColorMode controls ANSI colors in text output.
type ColorMode string

// Valid color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// TopN is the requested top-errors bound, echoed in the text header.
	TopN int

	// Color selects when the text formatter colorizes level names.
	Color ColorMode
}

// NewFormatter returns the formatter for the given format name.
func NewFormatter(format string, opts FormatOptions) (Formatter, error) {
	switch format {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "csv":
		return NewCSVFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or csv)", format)
	}
}
