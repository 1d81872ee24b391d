// Loglyzer - Log Analysis Tool
//
// Loglyzer parses line-oriented log files, filters entries by level,
// time range, and text, and reports aggregate statistics as text,
// JSON, or CSV.
package main

import (
	"os"

	"github.com/pmartel/loglyzer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
