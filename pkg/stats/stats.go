// Package stats computes aggregate statistics over filtered log entries.
package stats

import (
	"sort"
	"strings"

	"github.com/pmartel/loglyzer/pkg/parser"
)

// ErrorFrequency is one message in the top-errors ranking.
type ErrorFrequency struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Stats is the aggregation result for one pipeline run.
type Stats struct {
	// TotalEntries is the number of entries after filtering.
	TotalEntries int `json:"total_entries"`

	// ByLevel maps level name to count, keys only for observed levels.
	ByLevel map[string]int `json:"by_level"`

	// TopErrors lists the most frequent error messages, descending by
	// count, ties in first-seen order.
	TopErrors []ErrorFrequency `json:"top_errors"`

	// ErrorsByHour maps "HH:00" to the number of errors in that hour.
	ErrorsByHour map[string]int `json:"errors_by_hour"`

	// ErrorRateByHour maps "HH:00" to the percentage of all entries
	// that are errors in that hour.
	ErrorRateByHour map[string]float64 `json:"error_rate_by_hour"`

	// Since and Until echo the filter bounds, canonical form.
	Since string `json:"since,omitempty"`
	Until string `json:"until,omitempty"`

	// SkippedLines is the unparsable-line count from ingestion. It is
	// not affected by filtering.
	SkippedLines int `json:"skipped_lines"`
}

// Aggregate computes statistics over an already-filtered batch in a
// single pass. topN is clamped to at least 1. since and until are
// echoed verbatim into the result. Aggregation is total: it never
// fails, including on a single-entry batch.
func Aggregate(entries []*parser.LogEntry, topN int, since, until string, skipped int) *Stats {
	if topN < 1 {
		topN = 1
	}

	s := &Stats{
		TotalEntries:    len(entries),
		ByLevel:         make(map[string]int),
		ErrorsByHour:    make(map[string]int),
		ErrorRateByHour: make(map[string]float64),
		Since:           since,
		Until:           until,
		SkippedLines:    skipped,
	}

	counts := make(map[string]int)
	var firstSeen []string // tie-break order for equal counts
	for _, e := range entries {
		s.ByLevel[string(e.Level)]++

		if e.Level != parser.LevelError {
			continue
		}
		if counts[e.Message] == 0 {
			firstSeen = append(firstSeen, e.Message)
		}
		counts[e.Message]++
		if hour, ok := hourBucket(e.Timestamp); ok {
			s.ErrorsByHour[hour]++
		}
	}

	top := make([]ErrorFrequency, 0, len(firstSeen))
	for _, msg := range firstSeen {
		top = append(top, ErrorFrequency{Message: msg, Count: counts[msg]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > topN {
		top = top[:topN]
	}
	s.TopErrors = top

	// The empty batch is handled upstream as a terminal "no matches"
	// outcome, but guard the division regardless.
	if len(entries) > 0 {
		for hour, count := range s.ErrorsByHour {
			s.ErrorRateByHour[hour] = float64(count) / float64(len(entries)) * 100
		}
	}

	return s
}

// hourBucket derives the "HH:00" key from a stored timestamp string.
// The extraction is lexical on the timestamp text; no timezone
// computation is involved.
func hourBucket(ts string) (string, bool) {
	fields := strings.Fields(ts)
	if len(fields) < 2 {
		return "", false
	}
	hour, _, ok := strings.Cut(fields[1], ":")
	if !ok {
		return "", false
	}
	return hour + ":00", true
}
