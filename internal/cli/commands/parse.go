package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theDavidOlasupo/seglog/pkg/config"
	"github.com/theDavidOlasupo/seglog/pkg/output"
	"github.com/theDavidOlasupo/seglog/pkg/segment"
	"github.com/theDavidOlasupo/seglog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Config   string
	Output   string
	Severity string
	Progress bool
	Verbose  bool
	Quiet    bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <file-or-glob>...",
		Short: "Segment log files into logical entries",
		Long: `Segment one or more log files into logical entries.

Files are read in bounded chunks, so inputs of any size are handled without
loading a whole file into memory. Physical lines are grouped into logical
entries: stack-trace frames, tracebacks, indented and blank lines continue
the preceding entry. Each entry is classified by severity and timestamp from
its first line.

Exit codes:
  0 - Parse succeeded, no ERROR/FATAL entries
  1 - Parse succeeded, ERROR/FATAL entries present
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.Severity, "severity", "s", "", "Only show entries of this severity (error|warn|info|debug|trace)")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "Print streaming progress to stderr")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show full text of multi-line entries")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no entries")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_errors", "When to fire webhook (on_errors|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration (defaults when no file is given)
	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}

	// Validate severity filter up front
	var severityFilter string
	if opts.Severity != "" {
		severityFilter, err = output.ParseSeverityFilter(opts.Severity)
		if err != nil {
			return err
		}
	}

	// Expand input globs
	files, err := segment.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding input patterns: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files matched patterns: %v", args)
	}

	started := time.Now()

	reports := make([]output.FileReport, 0, len(files))
	for _, path := range files {
		fr, err := parseFile(ctx, cfg, opts, path)
		if err != nil {
			return err
		}
		if severityFilter != "" {
			fr.Entries = output.FilterBySeverity(fr.Entries, severityFilter)
		}
		reports = append(reports, *fr)
	}

	report := output.NewReport(reports, output.Metadata{
		Sources:        files,
		SeverityFilter: severityFilter,
		ParsedAt:       started,
		Duration:       time.Since(started),
	})

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}
	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the parse)
	sendWebhooks(ctx, cfg, opts, report)

	if report.HasErrors() {
		ExitCode = 1
	}

	return nil
}

// parseFile runs the segmentation engine over one file.
func parseFile(ctx context.Context, cfg *config.Config, opts *ParseOptions, path string) (*output.FileReport, error) {
	src, err := segment.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// File-size ceiling is caller-side policy; the engine accepts any size.
	if cfg.Limits.MaxFileSize > 0 && src.Size() > cfg.Limits.MaxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, over the %d byte ceiling", path, src.Size(), cfg.Limits.MaxFileSize)
	}

	segOpts := []segment.Option{
		segment.WithChunkSize(cfg.Parser.ChunkSize),
		segment.WithProgressInterval(cfg.Parser.ProgressInterval),
		segment.WithEncoding(segment.Encoding(cfg.Parser.Encoding)),
	}
	if cfg.Parser.StrictUTF8 {
		segOpts = append(segOpts, segment.WithStrictUTF8())
	}
	if opts.Progress {
		segOpts = append(segOpts, segment.WithProgress(func(p segment.Progress) {
			fmt.Fprintf(os.Stderr, "%s: %3.0f%% (%d lines, %d entries)\n",
				path, p.Fraction*100, p.Lines, p.Entries)
		}))
	}

	result, err := segment.New(segOpts...).Parse(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &output.FileReport{
		Path:    path,
		Entries: result.Entries,
		Stats:   result.Stats,
	}, nil
}

// loadConfig loads the config file if given, defaults otherwise.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func createFormatter(opts *ParseOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the parse.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ParseOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasErrors()) {
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
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
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

// shouldFireWebhook determines if a webhook should fire for this report.
func shouldFireWebhook(trigger config.WebhookTrigger, hasErrors bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnErrors:
		return hasErrors
	default:
		// Default to on_errors
		return hasErrors
	}
}
