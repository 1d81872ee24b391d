package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pmartel/loglyzer/pkg/stats"
)

// JSONFormatter formats statistics as indented JSON. The output is a
// direct structural serialization of the Stats object: mapping keys as
// strings, top errors as an ordered array of objects.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, s *stats.Stats, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}
