package segment

import (
	"regexp"
	"strings"
)

var (
	// timestampPattern matches YYYY-MM-DD followed by T or whitespace, then
	// HH:MM:SS with an optional fractional-second suffix. The timezone suffix
	// (Z, +01:00) is deliberately not captured.
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}:\d{2}(?:\.\d+)?`)

	// severityPattern matches a whole-word severity token anywhere on the
	// line. WARNING is listed before WARN so the longer token wins.
	severityPattern = regexp.MustCompile(`(?i)\b(ERROR|WARNING|WARN|INFO|DEBUG|TRACE|FATAL)\b`)
)

// extractTimestamp returns the first date-time substring on the line,
// captured as-is, or "" when none is present.
func extractTimestamp(line string) string {
	return timestampPattern.FindString(line)
}

// extractSeverity returns the uppercased severity token matched on the line,
// or "" when none is present. Aliases are recorded verbatim (FATAL stays
// FATAL, WARNING stays WARNING).
func extractSeverity(line string) string {
	m := severityPattern.FindString(line)
	if m == "" {
		return ""
	}
	return strings.ToUpper(m)
}

// IsEntryStart reports whether the line independently looks like the start of
// a new record: a recognizable timestamp, a severity token, or a JSON object
// opener after leading whitespace.
func IsEntryStart(line string) bool {
	if timestampPattern.MatchString(line) || severityPattern.MatchString(line) {
		return true
	}
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "{")
}

// continuationPrefixes mark stack-trace and traceback frames that belong to a
// preceding multi-line block.
var continuationPrefixes = []string{"at ", "Caused by", "Traceback", `File "`}

// IsContinuation reports whether the line looks like part of the preceding
// entry: blank, indented, or a known stack-trace/traceback frame. The
// continuation test takes precedence over the entry-start signal, which
// deliberately merges ambiguous lines into the previous entry rather than
// over-splitting.
func IsContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	for _, prefix := range continuationPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
