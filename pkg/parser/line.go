package parser

import (
	"regexp"
	"time"
)

// TimestampLayout is the only timestamp format the line grammar accepts.
const TimestampLayout = "2006-01-02 15:04:05"

// linePattern matches "<timestamp> [<LEVEL>] <message>". The timestamp
// must use a single space between date and time, matching
// TimestampLayout; its digit ranges are re-validated by time.Parse so
// out-of-range dates (month 13, hour 25) are rejected even though they
// match the regex.
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\s+\[(\w+)\]\s+(.+)$`)

// ParseLine parses one log line. The trailing line terminator must
// already be stripped. The second return value is false for any line
// that does not match the grammar; malformed lines are a counted
// outcome for callers, never an error.
func ParseLine(line string) (*LogEntry, bool) {
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	dt, err := time.Parse(TimestampLayout, m[1])
	if err != nil {
		return nil, false
	}

	level, ok := ParseLevel(m[2])
	if !ok {
		return nil, false
	}

	return &LogEntry{
		Timestamp: m[1],
		Datetime:  dt,
		Level:     level,
		Message:   m[3],
	}, true
}
