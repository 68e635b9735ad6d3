// Package report renders detection results for terminals and machine
// consumers. Values are always shortened on the human surface; only the
// JSON form carries full literals, for piping into the mask command.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/smartmask/smartmask/internal/types"
)

// Result is one scanned document and what was found in it.
type Result struct {
	Path       string            `json:"path"`
	Detections []types.Detection `json:"detections"`
}

// PrintOptions adjust the human-readable rendering.
type PrintOptions struct {
	NoColor bool
	// ShowValues prints full literals instead of shortened ones. Off by
	// default: a PII scanner should not echo PII unless asked.
	ShowValues bool
}

// Shorten displays a detected value without exposing it whole.
func Shorten(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// PrintTable renders one document's detections as a table with a
// type-count footer.
func PrintTable(w io.Writer, res Result, opts PrintOptions) {
	if len(res.Detections) == 0 {
		fmt.Fprintf(w, "%s: no PII found ✅\n", res.Path)
		return
	}

	fmt.Fprintf(w, "%s: %d detections\n", res.Path, len(res.Detections))
	table := tablewriter.NewTable(w)
	table.Header("TYPE", "VALUE", "CONFIDENCE", "SOURCE")
	for _, d := range res.Detections {
		val := Shorten(d.Value)
		if opts.ShowValues {
			val = d.Value
		}
		typ := string(d.Type)
		if !opts.NoColor {
			typ = colorType(d.Type)
		}
		_ = table.Append(typ, val, fmt.Sprintf("%.2f", d.Confidence), string(d.Source))
	}
	_ = table.Render()

	fmt.Fprintln(w)
	PrintSummary(w, res.Detections)
}

// PrintSummary writes the type-count line shown under tables and at the
// end of batch scans.
func PrintSummary(w io.Writer, ds []types.Detection) {
	counts := types.CountByType(ds)
	fmt.Fprintf(w, "Detections: %d (", len(ds))
	first := true
	for _, typ := range append(types.AllTypes(), types.TypeUnknown) {
		n := counts[typ]
		if n == 0 {
			continue
		}
		if !first {
			fmt.Fprint(w, ", ")
		}
		fmt.Fprintf(w, "%s: %d", typ, n)
		first = false
	}
	fmt.Fprintln(w, ")")
}

// PrintJSON emits results as indented JSON, one array for the whole run.
// This is the machine interface; full values are intentional here.
func PrintJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if results == nil {
		results = []Result{}
	}
	return enc.Encode(results)
}

func colorType(t types.PIIType) string {
	switch t {
	case types.TypeAadhaar, types.TypePAN:
		return "\x1b[31m" + string(t) + "\x1b[0m" // red: government IDs
	case types.TypePhone, types.TypeEmail:
		return "\x1b[33m" + string(t) + "\x1b[0m" // yellow
	case types.TypeName, types.TypeAddress:
		return "\x1b[36m" + string(t) + "\x1b[0m" // cyan
	default:
		return string(t)
	}
}
