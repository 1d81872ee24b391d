package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pmartel/loglyzer/pkg/stats"
)

// CSVFormatter formats statistics as a single metric,key,value table.
// Each statistic family is tagged by metric name; percentages carry
// 4 decimal digits, all other values are integers or echoed strings.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the report as CSV.
func (f *CSVFormatter) Format(ctx context.Context, s *stats.Stats, w io.Writer) error {
	cw := csv.NewWriter(w)

	records := [][]string{
		{"metric", "key", "value"},
		{"total", "", strconv.Itoa(s.TotalEntries)},
	}
	if s.SkippedLines > 0 {
		records = append(records, []string{"skipped", "", strconv.Itoa(s.SkippedLines)})
	}
	if s.Since != "" {
		records = append(records, []string{"filter", "since", s.Since})
	}
	if s.Until != "" {
		records = append(records, []string{"filter", "until", s.Until})
	}

	for _, level := range sortedKeys(s.ByLevel) {
		records = append(records, []string{"level", level, strconv.Itoa(s.ByLevel[level])})
	}
	for _, freq := range s.TopErrors {
		records = append(records, []string{"top_error", freq.Message, strconv.Itoa(freq.Count)})
	}
	for _, hour := range sortedKeys(s.ErrorsByHour) {
		records = append(records, []string{"error_by_hour", hour, strconv.Itoa(s.ErrorsByHour[hour])})
	}
	for _, hour := range sortedKeys(s.ErrorRateByHour) {
		rate := fmt.Sprintf("%.4f", s.ErrorRateByHour[hour])
		records = append(records, []string{"error_rate_by_hour", hour, rate})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}
