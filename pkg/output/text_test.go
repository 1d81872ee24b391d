package output

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmartel/loglyzer/pkg/stats"
)

func sampleStats() *stats.Stats {
	return &stats.Stats{
		TotalEntries: 4,
		ByLevel:      map[string]int{"ERROR": 2, "INFO": 1, "WARNING": 1},
		TopErrors: []stats.ErrorFrequency{
			{Message: "API timeout", Count: 2},
		},
		ErrorsByHour:    map[string]int{"10:00": 2},
		ErrorRateByHour: map[string]float64{"10:00": 50.0},
		SkippedLines:    1,
	}
}

func TestTextFormatter_FullReport(t *testing.T) {
	f := NewTextFormatter(FormatOptions{TopN: 3, Color: ColorNever})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), sampleStats(), &buf))
	out := buf.String()

	assert.Contains(t, out, "Log Analysis Results")
	assert.Contains(t, out, "Total entries: 4")
	assert.Contains(t, out, "Skipped lines (invalid format): 1")
	assert.Contains(t, out, "Breakdown by level:")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "Top errors (max 3):")
	assert.Contains(t, out, "API timeout")
	assert.Contains(t, out, "Errors by hour:")
	assert.Contains(t, out, "Error rate by hour:")
	assert.Contains(t, out, "50.00%")
	assert.NotContains(t, out, "Filters applied:")
}

func TestTextFormatter_EmptySectionsOmitted(t *testing.T) {
	s := &stats.Stats{
		TotalEntries:    2,
		ByLevel:         map[string]int{"INFO": 2},
		TopErrors:       nil,
		ErrorsByHour:    map[string]int{},
		ErrorRateByHour: map[string]float64{},
	}
	f := NewTextFormatter(FormatOptions{TopN: 5, Color: ColorNever})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), s, &buf))
	out := buf.String()

	assert.NotContains(t, out, "Top errors")
	assert.NotContains(t, out, "Errors by hour:")
	assert.NotContains(t, out, "Error rate by hour:")
	assert.NotContains(t, out, "Skipped lines")
}

func TestTextFormatter_FilterBoundsEchoed(t *testing.T) {
	s := sampleStats()
	s.Since = "2024-01-15 00:00:00"
	s.Until = "2024-01-15 23:59:59"
	f := NewTextFormatter(FormatOptions{TopN: 5, Color: ColorNever})

	var buf bytes.Buffer
	require.NoError(t, f.Format(context.Background(), s, &buf))
	out := buf.String()

	assert.Contains(t, out, "Filters applied:")
	assert.Contains(t, out, "since: 2024-01-15 00:00:00")
	assert.Contains(t, out, "until: 2024-01-15 23:59:59")
}

func TestNewFormatter(t *testing.T) {
	for _, name := range []string{"text", "json", "csv"} {
		f, err := NewFormatter(name, FormatOptions{TopN: 5})
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}

	_, err := NewFormatter("xml", FormatOptions{})
	assert.Error(t, err)
}
