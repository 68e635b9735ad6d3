// Package detect runs the two detection passes and concatenates their
// output. It deliberately performs no deduplication, overlap resolution,
// sorting or confidence filtering: callers see the raw pipeline output in
// pass order (rules first, then entities), each pass in appearance order.
package detect

import (
	"github.com/smartmask/smartmask/internal/catalog"
	"github.com/smartmask/smartmask/internal/ner"
	"github.com/smartmask/smartmask/internal/types"
)

// Entity label confidences. The recognizer reports no score of its own, so
// each mapped category carries a fixed value, same shape as the catalog.
const (
	nameConfidence    = 0.75
	addressConfidence = 0.70
)

// Recognizer yields named entities from free text in appearance order.
// *ner.Engine satisfies it; tests substitute a stub.
type Recognizer interface {
	Entities(text string) ([]ner.Entity, error)
}

// Detector holds the optional recognizer. A nil recognizer means the
// entity pass is skipped; construction of a Detector without a recognizer
// is an explicit caller decision, never a silent fallback.
type Detector struct {
	recognizer Recognizer
}

// New returns a detector running both passes. Pass nil to run rules only.
func New(r Recognizer) *Detector {
	return &Detector{recognizer: r}
}

// DetectRules runs every catalog pattern over text. Matches arrive grouped
// by rule in catalog order, each group in appearance order. Overlapping
// matches from different rules all survive.
func DetectRules(text string) []types.Detection {
	var out []types.Detection
	for _, r := range catalog.Rules() {
		for _, m := range r.Pattern.FindAllString(text, -1) {
			out = append(out, types.Detection{
				Type:       r.Type,
				Value:      m,
				Confidence: r.Confidence,
				Source:     types.SourceRule,
			})
		}
	}
	return out
}

// Detect runs the rule pass and then the entity pass, returning their
// concatenation. Empty text yields an empty result without invoking the
// recognizer. The only error source is recognizer inference; the rule pass
// cannot fail on any input.
func (d *Detector) Detect(text string) ([]types.Detection, error) {
	if text == "" {
		return nil, nil
	}
	out := DetectRules(text)
	if d.recognizer == nil {
		return out, nil
	}
	ents, err := d.recognizer.Entities(text)
	if err != nil {
		return nil, err
	}
	return append(out, mapEntities(ents)...), nil
}

// mapEntities converts recognizer output to detections. PERSON becomes
// NAME, GPE and LOC become ADDRESS; every other entity category is
// discarded. Blank spans are dropped, nothing else is.
func mapEntities(ents []ner.Entity) []types.Detection {
	var out []types.Detection
	for _, e := range ents {
		if e.Text == "" {
			continue
		}
		var d types.Detection
		switch e.Label {
		case "PERSON":
			d = types.Detection{Type: types.TypeName, Confidence: nameConfidence}
		case "GPE", "LOC":
			d = types.Detection{Type: types.TypeAddress, Confidence: addressConfidence}
		default:
			continue
		}
		d.Value = e.Text
		d.Source = types.SourceML
		out = append(out, d)
	}
	return out
}
