// Package catalog holds the static table of rule-based PII patterns.
// Detection stays a uniform loop over this data; there is no per-type
// matching code anywhere else.
package catalog

import (
	"regexp"

	"github.com/smartmask/smartmask/internal/types"
)

// Rule pairs a PII type with its compiled pattern and the fixed confidence
// assigned to every match of that pattern. Confidence is a catalog
// constant, never a computed score.
type Rule struct {
	Type       types.PIIType
	Pattern    *regexp.Regexp
	Confidence float64
}

// The catalog is read-only process-wide state, compiled once at init.
// Order matters only for output ordering; patterns are not exclusive, so a
// substring matching two rules yields two detections.
var rules = []Rule{
	// Aadhaar: three groups of 4 digits separated by single whitespace.
	{types.TypeAadhaar, regexp.MustCompile(`\b\d{4}\s\d{4}\s\d{4}\b`), 0.98},
	// PAN: 5 uppercase letters, 4 digits, 1 uppercase letter.
	{types.TypePAN, regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`), 0.97},
	// Indian mobile: exactly 10 digits starting 6-9.
	{types.TypePhone, regexp.MustCompile(`\b[6-9]\d{9}\b`), 0.95},
	// Email: local part @ domain . TLD, TLD case-insensitive.
	{types.TypeEmail, regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}\b`), 0.95},
}

// Rules returns the catalog in evaluation order. The returned slice is
// shared; callers must not modify it.
func Rules() []Rule {
	return rules
}

// Lookup returns the rule for a type, if the catalog has one. NAME and
// ADDRESS have no pattern rule; they come from the entity recognizer only.
func Lookup(t types.PIIType) (Rule, bool) {
	for _, r := range rules {
		if r.Type == t {
			return r, true
		}
	}
	return Rule{}, false
}
