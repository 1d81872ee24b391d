package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// drawInterval throttles terminal redraws.
const drawInterval = 60 * time.Millisecond

var byteCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

// ProgressBar renders a byte-driven progress bar. It is a display side
// channel only and never affects ingestion results. A nil *ProgressBar
// is valid: all methods are no-ops.
type ProgressBar struct {
	model    progress.Model
	out      io.Writer
	total    int64
	current  int64
	lastDraw time.Time
}

// NewProgressBar returns a bar for total input bytes, or nil when the
// input is below ProgressThreshold or stderr is not a terminal.
func NewProgressBar(total int64) *ProgressBar {
	if total < ProgressThreshold {
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return newProgressBar(os.Stderr, total)
}

func newProgressBar(out io.Writer, total int64) *ProgressBar {
	return &ProgressBar{
		model: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		out:   out,
		total: total,
	}
}

// Add records n consumed bytes and redraws the bar if enough time has
// passed since the last draw.
func (b *ProgressBar) Add(n int) {
	if b == nil {
		return
	}
	b.current += int64(n)
	if time.Since(b.lastDraw) < drawInterval && b.current < b.total {
		return
	}
	b.lastDraw = time.Now()

	ratio := float64(b.current) / float64(b.total)
	if ratio > 1 {
		ratio = 1
	}
	fmt.Fprintf(b.out, "\r%s %s", b.model.ViewAs(ratio),
		byteCountStyle.Render(fmt.Sprintf("%d/%d bytes", b.current, b.total)))
}

// Finish clears the bar from the terminal.
func (b *ProgressBar) Finish() {
	if b == nil {
		return
	}
	fmt.Fprintf(b.out, "\r%s\r", strings.Repeat(" ", 80))
}
