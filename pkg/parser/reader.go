package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Size thresholds driving the ingestion strategy. Both are performance
// heuristics: either strategy yields the same parsed entries.
const (
	// ParallelThreshold is the input byte size above which parsing is
	// fanned out across workers.
	ParallelThreshold = 10 * 1024 * 1024

	// ProgressThreshold is the input byte size at which a progress bar
	// is attached.
	ProgressThreshold = 5 * 1024 * 1024
)

// UseParallel reports whether the parallel strategy should handle an
// input of the given byte size. force overrides the size heuristic.
func UseParallel(force bool, size int64) bool {
	return force || size > ParallelThreshold
}

// ReadFile ingests a log file with the chosen strategy. The progress
// bar may be nil; it is a display side channel and never affects the
// result. Opening a missing file returns an error satisfying
// errors.Is(err, fs.ErrNotExist) so callers can report it distinctly
// from other I/O failures.
func ReadFile(path string, parallel bool, bar *ProgressBar) (*Result, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided log paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	if parallel {
		return readParallel(f, bar)
	}
	return readSequential(f, bar)
}

// readSequential parses lines as a stream, one at a time. Memory stays
// constant beyond the accumulated entries.
func readSequential(r io.Reader, bar *ProgressBar) (*Result, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	res := &Result{}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			bar.Add(len(line))
			if entry, ok := ParseLine(strings.TrimRight(line, "\r\n")); ok {
				res.Entries = append(res.Entries, entry)
			} else {
				res.Skipped++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}
	}

	bar.Finish()
	return res, nil
}

// readParallel materializes all lines first (single-threaded, so the
// progress bar sees no contention), then parses them concurrently.
// Line splitting mirrors readSequential exactly, with no length cap,
// so both strategies see the same lines. Results are collected in
// index order, preserving source order. Failures are inferred from
// the line count rather than tracked per-line.
func readParallel(r io.Reader, bar *ProgressBar) (*Result, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			bar.Add(len(line))
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}
	}
	bar.Finish()

	if len(lines) == 0 {
		return &Result{}, nil
	}

	// Each slot is written by exactly one worker; no locking needed.
	parsed := make([]*LogEntry, len(lines))

	var g errgroup.Group
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(lines) + workers - 1) / workers
	for start := 0; start < len(lines); start += chunk {
		end := min(start+chunk, len(lines))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if entry, ok := ParseLine(lines[i]); ok {
					parsed[i] = entry
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Entries: make([]*LogEntry, 0, len(lines))}
	for _, entry := range parsed {
		if entry != nil {
			res.Entries = append(res.Entries, entry)
		}
	}
	res.Skipped = len(lines) - len(res.Entries)

	return res, nil
}
