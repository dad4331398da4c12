// Package segment provides streaming segmentation of log files into logical
// entries. A single forward pass reads the input in bounded chunks, groups
// physical lines into multi-line entries (stack traces, wrapped JSON), and
// classifies each entry's severity and timestamp.
package segment

// Severity tokens recognized on an entry's first line. The engine records the
// matched token uppercased and verbatim; treating FATAL as high-severity
// alongside ERROR, or WARNING as an alias of WARN, is a presentation concern.
const (
	SeverityError   = "ERROR"
	SeverityWarn    = "WARN"
	SeverityWarning = "WARNING"
	SeverityInfo    = "INFO"
	SeverityDebug   = "DEBUG"
	SeverityTrace   = "TRACE"
	SeverityFatal   = "FATAL"
)

// LogEntry is one logical unit of log output, possibly spanning several
// physical lines.
type LogEntry struct {
	// LineStart and LineEnd are the 1-based inclusive physical line range.
	// Equal for single-line entries.
	LineStart int `json:"lineStart"`
	LineEnd   int `json:"lineEnd"`

	// Text is the entry's physical lines joined by a newline, in original order.
	Text string `json:"text"`

	// Severity is the uppercased severity token matched on the entry's first
	// line, or empty when none matched.
	Severity string `json:"severity,omitempty"`

	// Timestamp is the first date-time substring matched on the entry's first
	// line, captured as-is, or empty when none matched.
	Timestamp string `json:"timestamp,omitempty"`
}

// LineCount returns the number of physical lines the entry spans.
func (e *LogEntry) LineCount() int {
	return e.LineEnd - e.LineStart + 1
}

// ParsingStats summarizes a completed parse.
type ParsingStats struct {
	BytesProcessed int64 `json:"bytesProcessed"`
	TotalBytes     int64 `json:"totalBytes"`
	Lines          int   `json:"lines"`
	Entries        int   `json:"entries"`
	DurationMs     int64 `json:"durationMs"`
}

// Progress is a point-in-time report emitted while a parse is streaming.
// Entries counts finalized entries only; the currently open entry is not
// counted until it is closed.
type Progress struct {
	BytesProcessed int64   `json:"bytesProcessed"`
	TotalBytes     int64   `json:"totalBytes"`
	Fraction       float64 `json:"fraction"`
	Lines          int     `json:"lines"`
	Entries        int     `json:"entries"`
}

// Result is the terminal success payload of a parse.
type Result struct {
	Entries []LogEntry   `json:"entries"`
	Stats   ParsingStats `json:"stats"`
}
