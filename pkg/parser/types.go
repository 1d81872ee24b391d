// Package parser provides log line parsing and file ingestion.
package parser

import "time"

// LogEntry is a single parsed log line.
type LogEntry struct {
	// Timestamp is the verbatim timestamp string from the line.
	Timestamp string `json:"timestamp"`

	// Datetime is the parsed form of Timestamp, used for comparisons.
	Datetime time.Time `json:"-"`

	// Level is the severity of the entry.
	Level Level `json:"level"`

	// Message is the free-text remainder of the line.
	Message string `json:"message"`
}

// String returns the canonical rendering "<timestamp> [<LEVEL>] <message>".
func (e *LogEntry) String() string {
	return e.Timestamp + " [" + string(e.Level) + "] " + e.Message
}

// Result holds the entries from one ingestion run plus the number of
// lines that failed to parse.
type Result struct {
	// Entries are the successfully parsed lines, in source order.
	Entries []*LogEntry

	// Skipped is the number of lines that did not match the grammar.
	Skipped int
}
