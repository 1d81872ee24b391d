package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmartel/loglyzer/internal/logging"
	"github.com/pmartel/loglyzer/pkg/config"
	"github.com/pmartel/loglyzer/pkg/filter"
	"github.com/pmartel/loglyzer/pkg/output"
	"github.com/pmartel/loglyzer/pkg/parser"
	"github.com/pmartel/loglyzer/pkg/stats"
	"github.com/pmartel/loglyzer/pkg/webhook"
)

// ExitCode is set by commands to indicate the process exit status.
var ExitCode = 0

// Process exit codes. A missing log file is a distinct, lower-severity
// outcome than other runtime failures.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitNotFound = 2
)

// noMatchMessage is emitted when filtering leaves no entries. This is a
// designed success outcome, not an error.
const noMatchMessage = "No entries match the given filters."

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ErrorsOnly bool
	Search     string
	Top        int
	Since      string
	Until      string
	Format     string
	Output     string
	Parallel   bool
	Verbose    bool
	NoProgress bool
	Color      string
	Config     string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <log-file>",
		Short: "Analyze a log file and report statistics",
		Long: `Analyze a log file: parse its entries, apply the requested filters,
and report level counts, top recurring errors, and per-hour error
counts and rates.

Files larger than 10MB are parsed in parallel automatically; use
--parallel to force it for smaller files.

Exit codes:
  0 - Analysis completed (including the no-matches outcome)
  1 - Runtime error
  2 - Log file not found`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().BoolVar(&opts.ErrorsOnly, "errors-only", false, "Keep only ERROR entries")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Case-insensitive text to search in each entry")
	cmd.Flags().IntVar(&opts.Top, "top", config.DefaultTop, "Number of most frequent errors to report")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Keep entries at or after this datetime (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&opts.Until, "until", "", "Keep entries at or before this datetime (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", config.DefaultFormat, "Output format (text|json|csv)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "Force parallel ingestion regardless of file size")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show ingestion mode and timing information")
	cmd.Flags().BoolVar(&opts.NoProgress, "no-progress", false, "Disable the progress bar for large files")
	cmd.Flags().StringVar(&opts.Color, "color", config.DefaultColor, "Colorize text output (auto|always|never)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to a YAML config file with defaults")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL for the JSON report")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_errors", "When to fire webhook (on_errors|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	input := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration defaults; explicit flags win over config values.
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if !cmd.Flags().Changed("format") {
		opts.Format = cfg.Format
	}
	if !cmd.Flags().Changed("top") {
		opts.Top = cfg.Top
	}
	if !cmd.Flags().Changed("color") {
		opts.Color = cfg.Color
	}

	if opts.Top < 1 {
		return fmt.Errorf("--top must be at least 1, got %d", opts.Top)
	}

	formatter, err := output.NewFormatter(opts.Format, output.FormatOptions{
		TopN:  opts.Top,
		Color: output.ColorMode(opts.Color),
	})
	if err != nil {
		return err
	}

	var since, until *time.Time
	if opts.Since != "" {
		t, err := parseDateTime(opts.Since)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		since = &t
	}
	if opts.Until != "" {
		t, err := parseDateTime(opts.Until)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		until = &t
	}

	logger := logging.New(opts.Verbose)
	defer func() { _ = logger.Sync() }()

	info, err := os.Stat(input)
	if err != nil {
		err = fmt.Errorf("reading log file %s: %w", input, err)
		classifyIngestError(err)
		return err
	}
	size := info.Size()

	parallel := parser.UseParallel(opts.Parallel, size)
	mode := "sequential"
	if parallel {
		mode = "parallel"
	}
	logger.Debugf("reading %s (%d bytes) in %s mode", input, size, mode)

	var bar *parser.ProgressBar
	if cfg.Progress && !opts.NoProgress {
		bar = parser.NewProgressBar(size)
	}

	start := time.Now()
	result, err := parser.ReadFile(input, parallel, bar)
	if err != nil {
		classifyIngestError(err)
		return err
	}
	parseTime := time.Since(start)

	filtered := filter.Apply(result.Entries, filter.Options{
		ErrorsOnly: opts.ErrorsOnly,
		Search:     opts.Search,
		Since:      since,
		Until:      until,
	})

	if len(filtered) == 0 {
		return writeNoMatch(opts.Output)
	}

	var sinceEcho, untilEcho string
	if since != nil {
		sinceEcho = since.Format(parser.TimestampLayout)
	}
	if until != nil {
		untilEcho = until.Format(parser.TimestampLayout)
	}

	aggStart := time.Now()
	report := stats.Aggregate(filtered, opts.Top, sinceEcho, untilEcho, result.Skipped)
	aggTime := time.Since(aggStart)

	if err := writeReport(ctx, formatter, report, opts.Output); err != nil {
		return err
	}

	// Webhook delivery failures are reported but never fail the run.
	sendWebhooks(ctx, cfg, opts, report)

	logger.Debugf("performance: parse=%s aggregate=%s total=%s",
		parseTime, aggTime, time.Since(start))

	return nil
}

// classifyIngestError sets the process exit code for an ingestion
// failure: missing files exit 2, everything else exits 1.
func classifyIngestError(err error) {
	if errors.Is(err, fs.ErrNotExist) {
		ExitCode = ExitNotFound
	} else {
		ExitCode = ExitFailure
	}
}

func parseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(parser.TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q does not match YYYY-MM-DD HH:MM:SS", s)
	}
	return t, nil
}

func writeReport(ctx context.Context, formatter output.Formatter, report *stats.Stats, path string) error {
	if path == "" {
		return formatter.Format(ctx, report, os.Stdout)
	}

	f, err := os.Create(path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := formatter.Format(ctx, report, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("formatting output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	fmt.Printf("Results written to %s\n", path)
	return nil
}

func writeNoMatch(path string) error {
	if path == "" {
		fmt.Println(noMatchMessage)
		return nil
	}

	if err := os.WriteFile(path, []byte(noMatchMessage+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the analysis.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *AnalyzeOptions, report *stats.Stats) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()
	hasErrors := report.ByLevel[string(parser.LevelError)] > 0

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, hasErrors) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnErrors
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook fires for this report.
func shouldFireWebhook(trigger config.WebhookTrigger, hasErrors bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasErrors
	}
}
