package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theDavidOlasupo/seglog/pkg/config"
	"github.com/theDavidOlasupo/seglog/pkg/segment"
)

// sampleLines is how many lines diagnose reads from the head of each file.
const sampleLines = 100

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Config  string
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <file-or-glob>...",
		Short: "Diagnose common input problems",
		Long: `Diagnose common problems with log inputs before parsing.

This command checks:
- Configuration file validity (when --config is given)
- Input file existence and accessibility
- File size against the configured ceiling
- Whether the head of each file contains recognizable entry starts

Example:
  seglog diagnose /var/log/app/*.log
  seglog diagnose -c config.yaml -v app.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(ctx context.Context, args []string, opts *DiagnoseOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	results := []DiagnosticResult{}

	// 1. Check configuration
	cfg, result := checkConfig(ctx, opts.Config)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(results, opts)
		return nil
	}

	// 2. Expand input patterns
	files, err := segment.ExpandGlobs(args)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:    "Input Patterns",
			Status:   "error",
			Message:  fmt.Sprintf("Invalid input pattern: %v", err),
			Suggests: []string{"Verify the glob pattern syntax"},
		})
		printDiagnostics(results, opts)
		return nil
	}

	// 3. Check each input file
	for _, path := range files {
		results = append(results, checkInputFile(cfg, path)...)
	}

	printDiagnostics(results, opts)
	return nil
}

// checkConfig validates the config file, or reports defaults when none given.
func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	if path == "" {
		result.Status = "ok"
		result.Message = "No config file given, using defaults"
		return config.DefaultConfig(), result
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Config valid: %s", path)
	result.Details = []string{
		fmt.Sprintf("Chunk size: %d bytes", cfg.Parser.ChunkSize),
		fmt.Sprintf("Encoding: %s", cfg.Parser.Encoding),
	}
	return cfg, result
}

// checkInputFile checks one input file's accessibility and samples its head.
func checkInputFile(cfg *config.Config, path string) []DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Input: %s", filepath.Base(path)),
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = "File does not exist"
		result.Suggests = []string{"Check if the log file path is correct"}
		return []DiagnosticResult{result}
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return []DiagnosticResult{result}
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		result.Suggests = []string{
			"Use a glob pattern to match files in directory",
			"Example: /var/log/app/*.log",
		}
		return []DiagnosticResult{result}
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "File is empty (0 bytes) - parsing yields zero entries"
		return []DiagnosticResult{result}
	}
	if cfg.Limits.MaxFileSize > 0 && info.Size() > cfg.Limits.MaxFileSize {
		result.Status = "error"
		result.Message = fmt.Sprintf("File is %d bytes, over the %d byte ceiling", info.Size(), cfg.Limits.MaxFileSize)
		result.Suggests = []string{"Raise limits.max_file_size or split the file"}
		return []DiagnosticResult{result}
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("File exists (%d bytes)", info.Size())

	return []DiagnosticResult{result, sampleEntryStarts(path)}
}

// sampleEntryStarts reads the head of the file and reports how many lines
// look like entry starts versus continuations.
func sampleEntryStarts(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Entry Starts: %s", filepath.Base(path)),
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided log paths are expected
	if err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Cannot read file: %v", err)
		return result
	}
	defer f.Close()

	var total, starts, continuations int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() && total < sampleLines {
		line := scanner.Text()
		total++
		switch {
		case segment.IsContinuation(line):
			continuations++
		case segment.IsEntryStart(line):
			starts++
		}
	}
	if err := scanner.Err(); err != nil {
		result.Status = "warning"
		result.Message = fmt.Sprintf("Error while sampling: %v", err)
		return result
	}

	result.Details = []string{
		fmt.Sprintf("Sampled %d line(s): %d entry start(s), %d continuation(s)", total, starts, continuations),
	}

	if starts == 0 {
		result.Status = "warning"
		result.Message = "No timestamp, severity, or JSON markers in the sampled head"
		result.Suggests = []string{
			"The whole file may segment into very few entries",
			"Verify the file is a log file and its encoding matches the config",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%d of %d sampled lines look like entry starts", starts, total)
	return result
}

// printDiagnostics prints all diagnostic results with a summary.
func printDiagnostics(results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Println("=== seglog Input Diagnostics ===")
	fmt.Println()

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Printf("[%s] %s\n", icon, r.Check)
		fmt.Printf("    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Printf("      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Printf("      Hint: %s\n", s)
		}

		fmt.Println()
	}

	fmt.Println("---")
	fmt.Printf("Summary: %d passed, %d warnings, %d failures\n", okCount, warnCount, errCount)

	if errCount > 0 {
		ExitCode = 1
	}
}
