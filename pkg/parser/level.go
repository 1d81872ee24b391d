package parser

import "strings"

// Level classifies the severity of a log entry.
type Level string

// The closed set of levels a log line may carry.
const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
	LevelDebug   Level = "DEBUG"
)

// ParseLevel maps a level token to a known Level. Matching is
// case-insensitive; WARN is accepted as an alias for WARNING. The alias
// table lives here so adding a level doesn't scatter string comparisons.
func ParseLevel(token string) (Level, bool) {
	switch strings.ToUpper(token) {
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarning, true
	case "ERROR":
		return LevelError, true
	case "DEBUG":
		return LevelDebug, true
	default:
		return "", false
	}
}
