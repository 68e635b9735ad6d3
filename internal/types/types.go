package types

import "fmt"

// PIIType classifies a detected value into one of the supported categories.
type PIIType string

const (
	TypeAadhaar PIIType = "AADHAAR"
	TypePAN     PIIType = "PAN"
	TypePhone   PIIType = "PHONE"
	TypeEmail   PIIType = "EMAIL"
	TypeName    PIIType = "NAME"
	TypeAddress PIIType = "ADDRESS"

	// TypeUnknown is the fallback for any type string outside the closed set.
	TypeUnknown PIIType = "UNKNOWN"
)

// Source records which detector produced a Detection. It is provenance
// only; no code path suppresses or prioritizes a detection by source.
type Source string

const (
	SourceRule Source = "RULE"
	SourceML   Source = "ML"
)

// Detection describes one PII value found in a document. Value is the
// literal matched substring; there is no positional offset, so masking is
// value-based, not occurrence-based. Detections are immutable value
// objects with no identity beyond their fields and are never persisted.
// Duplicate records for the same literal are legal.
type Detection struct {
	Type       PIIType `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// ParseType maps an arbitrary type string onto the closed PIIType set,
// falling back to TypeUnknown.
func ParseType(s string) PIIType {
	switch PIIType(s) {
	case TypeAadhaar, TypePAN, TypePhone, TypeEmail, TypeName, TypeAddress:
		return PIIType(s)
	default:
		return TypeUnknown
	}
}

// Known reports whether t belongs to the closed type set.
func (t PIIType) Known() bool {
	return t != TypeUnknown && ParseType(string(t)) == t
}

// AllTypes returns the closed type set in display order.
func AllTypes() []PIIType {
	return []PIIType{TypeAadhaar, TypePAN, TypePhone, TypeEmail, TypeName, TypeAddress}
}

// Validate checks a detection's shape. Detection and masking never reject
// malformed records at runtime; this is for ingestion paths (JSON input,
// type selections from flags) that want to fail early.
func (d Detection) Validate() error {
	if d.Value == "" {
		return fmt.Errorf("detection has empty value")
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", d.Confidence)
	}
	if d.Source != SourceRule && d.Source != SourceML {
		return fmt.Errorf("unknown source %q", d.Source)
	}
	return nil
}

// CountByType aggregates detections into a type-count summary, the shape
// shown by the review surface and recorded in the audit log.
func CountByType(ds []Detection) map[PIIType]int {
	counts := make(map[PIIType]int)
	for _, d := range ds {
		counts[ParseType(string(d.Type))]++
	}
	return counts
}
