package core

import (
	"github.com/smartmask/smartmask/internal/detect"
	"github.com/smartmask/smartmask/internal/mask"
	"github.com/smartmask/smartmask/internal/ner"
	"github.com/smartmask/smartmask/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Detection = types.Detection
type PIIType = types.PIIType
type Source = types.Source

// The closed detection type set.
const (
	TypeAadhaar = types.TypeAadhaar
	TypePAN     = types.TypePAN
	TypePhone   = types.TypePhone
	TypeEmail   = types.TypeEmail
	TypeName    = types.TypeName
	TypeAddress = types.TypeAddress
	TypeUnknown = types.TypeUnknown

	SourceRule = types.SourceRule
	SourceML   = types.SourceML
)

// Recognizer is the entity-recognition hook for Detect. *ner.Engine
// satisfies it; pass nil for rule-only detection.
type Recognizer = detect.Recognizer

// ModelConfig configures LoadModel.
type ModelConfig = ner.Config

// LoadModel initializes the entity recognizer. Callers own the returned
// engine and should Close it when done.
func LoadModel(cfg ModelConfig) (*ner.Engine, error) {
	return ner.Load(cfg, nil)
}

// Detect runs both detection passes over text: catalog rules first, then
// the recognizer's entities, concatenated without deduplication or
// sorting. A nil recognizer skips the entity pass.
func Detect(text string, r Recognizer) ([]Detection, error) {
	return detect.New(r).Detect(text)
}

// DetectRules runs only the pattern catalog. It cannot fail.
func DetectRules(text string) []Detection {
	return detect.DetectRules(text)
}

// Mask replaces every literal occurrence of each selected detection's
// value with its type-specific masked form, processing the selection in
// order. An empty selection returns text unchanged.
func Mask(text string, selected []Detection) string {
	return mask.Apply(text, selected)
}

// MaskValue returns the masked form of a single value.
func MaskValue(value string, t PIIType) string {
	return mask.Value(value, t)
}
