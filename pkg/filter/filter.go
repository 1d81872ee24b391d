// Package filter narrows a batch of parsed log entries.
package filter

import (
	"strings"
	"time"

	"github.com/pmartel/loglyzer/pkg/parser"
)

// Options are the filter parameters. Zero-value fields impose no
// constraint; all set constraints must hold for an entry to pass.
type Options struct {
	// ErrorsOnly keeps only ERROR entries.
	ErrorsOnly bool

	// Search is a case-insensitive substring matched against the
	// canonical rendering "<timestamp> [<LEVEL>] <message>".
	Search string

	// Since keeps entries at or after this time (inclusive).
	Since *time.Time

	// Until keeps entries at or before this time (inclusive).
	Until *time.Time
}

// Apply returns the subsequence of entries satisfying all options.
// Order is preserved and entries are never mutated. An empty result is
// a valid terminal outcome, not an error.
func Apply(entries []*parser.LogEntry, opts Options) []*parser.LogEntry {
	search := strings.ToLower(opts.Search)

	filtered := make([]*parser.LogEntry, 0, len(entries))
	for _, e := range entries {
		if opts.ErrorsOnly && e.Level != parser.LevelError {
			continue
		}
		if opts.Since != nil && e.Datetime.Before(*opts.Since) {
			continue
		}
		if opts.Until != nil && e.Datetime.After(*opts.Until) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.String()), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
