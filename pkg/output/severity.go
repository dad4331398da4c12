package output

import (
	"fmt"
	"strings"

	"github.com/theDavidOlasupo/seglog/pkg/segment"
)

// NormalizeSeverity maps presentation-layer aliases onto the canonical level:
// FATAL is treated as ERROR and WARNING as WARN. The engine records matched
// tokens verbatim; this is the one place aliases collapse.
func NormalizeSeverity(severity string) string {
	switch severity {
	case segment.SeverityFatal:
		return segment.SeverityError
	case segment.SeverityWarning:
		return segment.SeverityWarn
	default:
		return severity
	}
}

// ParseSeverityFilter validates a user-supplied severity filter and returns
// its canonical form.
func ParseSeverityFilter(raw string) (string, error) {
	level := NormalizeSeverity(strings.ToUpper(raw))
	switch level {
	case segment.SeverityError, segment.SeverityWarn, segment.SeverityInfo,
		segment.SeverityDebug, segment.SeverityTrace:
		return level, nil
	default:
		return "", fmt.Errorf("unknown severity %q (use error, warn, info, debug, or trace)", raw)
	}
}

// FilterBySeverity returns the entries whose normalized severity equals the
// canonical level. Entries without a severity never match.
func FilterBySeverity(entries []segment.LogEntry, level string) []segment.LogEntry {
	filtered := make([]segment.LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Severity != "" && NormalizeSeverity(e.Severity) == level {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
