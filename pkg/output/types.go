// Package output provides formatting and output generation for parse results.
package output

import (
	"time"

	"github.com/theDavidOlasupo/seglog/pkg/segment"
)

// Report is the complete parse output across all input files.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Files contains per-file entries and statistics.
	Files []FileReport `json:"files"`

	// Metadata provides context about the parse run.
	Metadata Metadata `json:"metadata"`
}

// FileReport holds one input file's segmented entries and statistics.
type FileReport struct {
	Path    string               `json:"path"`
	Entries []segment.LogEntry   `json:"entries"`
	Stats   segment.ParsingStats `json:"stats"`
}

// Summary provides aggregate statistics across all files.
type Summary struct {
	// Files is the number of input files parsed.
	Files int `json:"files"`

	// Lines is the total number of physical lines seen.
	Lines int `json:"lines"`

	// Entries is the total number of logical entries produced.
	Entries int `json:"entries"`

	// ErrorEntries is the number of entries whose normalized severity is
	// ERROR (this is where FATAL counts as ERROR).
	ErrorEntries int `json:"errorEntries"`

	// Bytes is the total number of bytes processed.
	Bytes int64 `json:"bytes"`
}

// Metadata provides context about the parse run.
type Metadata struct {
	// Sources lists the files that were parsed.
	Sources []string `json:"sources"`

	// SeverityFilter is the presentation-layer severity filter that was
	// applied, if any.
	SeverityFilter string `json:"severityFilter,omitempty"`

	// ParsedAt is when the parse was performed.
	ParsedAt time.Time `json:"parsedAt"`

	// Duration is how long parsing all files took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from per-file results.
func NewReport(files []FileReport, meta Metadata) *Report {
	report := &Report{
		Files:    files,
		Metadata: meta,
		Summary:  Summary{Files: len(files)},
	}

	for i := range files {
		report.Summary.Lines += files[i].Stats.Lines
		report.Summary.Entries += files[i].Stats.Entries
		report.Summary.Bytes += files[i].Stats.BytesProcessed
		for j := range files[i].Entries {
			if NormalizeSeverity(files[i].Entries[j].Severity) == segment.SeverityError {
				report.Summary.ErrorEntries++
			}
		}
	}

	return report
}

// HasErrors returns true if any ERROR or FATAL entries were found.
func (r *Report) HasErrors() bool {
	return r.Summary.ErrorEntries > 0
}
