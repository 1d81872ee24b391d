package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/pmartel/loglyzer/pkg/stats"
)

// TextFormatter formats statistics as a human-readable multi-section
// report. Sections whose underlying collection is empty are omitted.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, s *stats.Stats, w io.Writer) error {
	color := f.colorEnabled(w)

	fmt.Fprintln(w, "Log Analysis Results")
	fmt.Fprintln(w, "====================")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total entries: %d\n", s.TotalEntries)
	if s.SkippedLines > 0 {
		fmt.Fprintf(w, "Skipped lines (invalid format): %d\n", s.SkippedLines)
	}

	if s.Since != "" || s.Until != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Filters applied:")
		if s.Since != "" {
			fmt.Fprintf(w, "  since: %s\n", s.Since)
		}
		if s.Until != "" {
			fmt.Fprintf(w, "  until: %s\n", s.Until)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Breakdown by level:")
	table := tablewriter.NewWriter(w)
	table.Header("Level", "Count", "Percentage")
	for _, level := range sortedKeys(s.ByLevel) {
		count := s.ByLevel[level]
		percentage := 0.0
		if s.TotalEntries > 0 {
			percentage = float64(count) / float64(s.TotalEntries) * 100
		}
		row := []string{
			f.levelName(level, color),
			strconv.Itoa(count),
			fmt.Sprintf("%.1f%%", percentage),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(s.TopErrors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Top errors (max %d):\n", f.opts.TopN)
		errTable := tablewriter.NewWriter(w)
		errTable.Header("Error Message", "Occurrences")
		for _, freq := range s.TopErrors {
			if err := errTable.Append([]string{freq.Message, strconv.Itoa(freq.Count)}); err != nil {
				return err
			}
		}
		if err := errTable.Render(); err != nil {
			return err
		}
	}

	if len(s.ErrorsByHour) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by hour:")
		hourTable := tablewriter.NewWriter(w)
		hourTable.Header("Hour", "Count")
		for _, hour := range sortedKeys(s.ErrorsByHour) {
			if err := hourTable.Append([]string{hour, strconv.Itoa(s.ErrorsByHour[hour])}); err != nil {
				return err
			}
		}
		if err := hourTable.Render(); err != nil {
			return err
		}
	}

	if len(s.ErrorRateByHour) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Error rate by hour:")
		rateTable := tablewriter.NewWriter(w)
		rateTable.Header("Hour", "Error %")
		for _, hour := range sortedKeys(s.ErrorRateByHour) {
			row := []string{hour, fmt.Sprintf("%.2f%%", s.ErrorRateByHour[hour])}
			if err := rateTable.Append(row); err != nil {
				return err
			}
		}
		if err := rateTable.Render(); err != nil {
			return err
		}
	}

	return nil
}

// levelName colorizes ERROR and WARNING level names when color is on.
func (f *TextFormatter) levelName(level string, color bool) string {
	if !color {
		return level
	}
	switch level {
	case "ERROR":
		return styles.Error.Render(level)
	case "WARNING":
		return styles.Warning.Render(level)
	default:
		return level
	}
}

func (f *TextFormatter) colorEnabled(w io.Writer) bool {
	switch f.opts.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		file, ok := w.(*os.File)
		return ok && isatty.IsTerminal(file.Fd())
	}
}

// sortedKeys returns the map's keys in ascending order. Hour buckets
// and level names both sort correctly as plain strings.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
