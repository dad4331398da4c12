package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/theDavidOlasupo/seglog/pkg/segment"
)

func testReport() *Report {
	return NewReport([]FileReport{
		{
			Path: "app.log",
			Entries: []segment.LogEntry{
				{
					LineStart: 1, LineEnd: 3,
					Text:      "2024-01-15T10:30:00 ERROR boom\n  at com.foo.Bar(Bar.java:1)\n  at com.foo.Baz(Baz.java:2)",
					Severity:  "ERROR",
					Timestamp: "2024-01-15T10:30:00",
				},
				{
					LineStart: 4, LineEnd: 4,
					Text:     "2024-01-15T10:30:01 INFO recovered",
					Severity: "INFO", Timestamp: "2024-01-15T10:30:01",
				},
			},
			Stats: segment.ParsingStats{
				BytesProcessed: 120, TotalBytes: 120,
				Lines: 4, Entries: 2, DurationMs: 1,
			},
		},
	}, Metadata{
		Sources:  []string{"app.log"},
		ParsedAt: time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC),
		Duration: 2 * time.Millisecond,
	})
}

func TestNewReport_Summary(t *testing.T) {
	report := testReport()

	if report.Summary.Files != 1 {
		t.Errorf("Files = %d, want 1", report.Summary.Files)
	}
	if report.Summary.Lines != 4 {
		t.Errorf("Lines = %d, want 4", report.Summary.Lines)
	}
	if report.Summary.Entries != 2 {
		t.Errorf("Entries = %d, want 2", report.Summary.Entries)
	}
	if report.Summary.ErrorEntries != 1 {
		t.Errorf("ErrorEntries = %d, want 1", report.Summary.ErrorEntries)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
}

func TestNewReport_FatalCountsAsError(t *testing.T) {
	report := NewReport([]FileReport{
		{
			Path:    "f.log",
			Entries: []segment.LogEntry{{LineStart: 1, LineEnd: 1, Text: "FATAL x", Severity: "FATAL"}},
			Stats:   segment.ParsingStats{Lines: 1, Entries: 1},
		},
	}, Metadata{})

	if report.Summary.ErrorEntries != 1 {
		t.Errorf("ErrorEntries = %d, want 1 (FATAL aliases ERROR)", report.Summary.ErrorEntries)
	}
}

func TestTextFormatter_Full(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{})

	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== seglog Parse Report ===",
		"File: app.log",
		"1-3",
		"ERROR",
		"2024-01-15T10:30:00 ERROR boom",
		"Summary: 1 file(s), 4 lines, 2 entries, 1 error entries",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Continuation lines only show with --verbose.
	if strings.Contains(out, "Bar.java") {
		t.Errorf("non-verbose output contains continuation lines:\n%s", out)
	}
}

func TestTextFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Verbose: true})

	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "Bar.java") {
		t.Errorf("verbose output missing continuation lines:\n%s", buf.String())
	}
}

func TestTextFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(FormatOptions{Quiet: true})

	if err := f.Format(context.Background(), testReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "File:") {
		t.Errorf("quiet output contains file details:\n%s", out)
	}
	if !strings.Contains(out, "1 file(s), 4 lines, 2 entries") {
		t.Errorf("quiet output missing summary:\n%s", out)
	}
}
