// Package mask rewrites detected PII values into type-specific redacted
// forms. Replacement is value-based: every literal occurrence of a selected
// value is rewritten, with no positional anchoring and no length
// preservation.
package mask

import (
	"strings"

	"github.com/smartmask/smartmask/internal/types"
)

// Value returns the masked representation of one value. Partial-reveal
// types keep a tail of the original for reference; entity types and
// anything unrecognized collapse to a bracketed label. This function never
// fails: malformed input degrades to a generic label.
func Value(v string, t types.PIIType) string {
	switch types.ParseType(string(t)) {
	case types.TypeAadhaar:
		return "XXXX XXXX " + tail(v, 4)
	case types.TypePAN:
		return "XXXXX" + tail(v, 3)
	case types.TypePhone:
		return "XXXXXX" + tail(v, 4)
	case types.TypeEmail:
		parts := strings.Split(v, "@")
		if len(parts) != 2 {
			return "[REDACTED EMAIL]"
		}
		return "xxxxx@" + parts[1]
	case types.TypeName:
		return "[REDACTED NAME]"
	case types.TypeAddress:
		return "[REDACTED ADDRESS]"
	default:
		return "[REDACTED]"
	}
}

// tail returns the last n bytes of s. Rule-matched values are always long
// enough, but hand-built detections may not be; short values are returned
// whole rather than panicking.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Apply masks every selected detection in the order given. Each step
// replaces all remaining literal occurrences of the value in the current
// text, so duplicate selections are no-ops after the first and substring
// relationships between values are resolved purely by selection order.
// An empty selection returns text unchanged.
func Apply(text string, selected []types.Detection) string {
	for _, d := range selected {
		if d.Value == "" {
			continue
		}
		text = strings.ReplaceAll(text, d.Value, Value(d.Value, d.Type))
	}
	return text
}
