package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/theDavidOlasupo/seglog/pkg/segment"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "seglog: %d file(s), %d lines, %d entries, %d error entries\n",
		report.Summary.Files,
		report.Summary.Lines,
		report.Summary.Entries,
		report.Summary.ErrorEntries)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== seglog Parse Report ===")
	fmt.Fprintln(w)

	for i := range report.Files {
		if err := f.formatFile(&report.Files[i], w); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d file(s), %d lines, %d entries, %d error entries, %d bytes in %s\n",
		report.Summary.Files,
		report.Summary.Lines,
		report.Summary.Entries,
		report.Summary.ErrorEntries,
		report.Summary.Bytes,
		report.Metadata.Duration)
	return nil
}

func (f *TextFormatter) formatFile(file *FileReport, w io.Writer) error {
	fmt.Fprintf(w, "File: %s\n", file.Path)
	fmt.Fprintf(w, "  %d lines, %d entries, %d bytes (%dms)\n",
		file.Stats.Lines, file.Stats.Entries, file.Stats.BytesProcessed, file.Stats.DurationMs)

	for i := range file.Entries {
		f.formatEntry(&file.Entries[i], w)
	}

	fmt.Fprintln(w)
	return nil
}

func (f *TextFormatter) formatEntry(entry *segment.LogEntry, w io.Writer) {
	lines := fmt.Sprintf("%d", entry.LineStart)
	if entry.LineEnd > entry.LineStart {
		lines = fmt.Sprintf("%d-%d", entry.LineStart, entry.LineEnd)
	}

	severity := entry.Severity
	if severity == "" {
		severity = "-"
	}

	first, _, _ := strings.Cut(entry.Text, "\n")
	fmt.Fprintf(w, "  %8s  %-7s %s\n", lines, severity, first)

	if f.opts.Verbose && entry.LineEnd > entry.LineStart {
		for _, line := range strings.Split(entry.Text, "\n")[1:] {
			fmt.Fprintf(w, "  %8s  %-7s %s\n", "", "", line)
		}
	}
}
