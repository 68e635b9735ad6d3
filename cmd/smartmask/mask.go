package smartmask

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartmask/smartmask/internal/audit"
	"github.com/smartmask/smartmask/internal/config"
	"github.com/smartmask/smartmask/internal/extract"
	"github.com/smartmask/smartmask/internal/mask"
	"github.com/smartmask/smartmask/internal/tui"
	"github.com/smartmask/smartmask/internal/types"
)

var (
	flagMaskAll    bool
	flagMaskAuto   bool
	flagMaskTypes  string
	flagMaskOutput string
	flagMaskStdout bool
	flagMaskSuffix string
)

func init() {
	cmd := &cobra.Command{
		Use:   "mask <file>",
		Short: "Mask detected PII without interactive review",
		Long:  "Detects PII in a document and masks a flag-chosen subset: everything, the high-confidence detections, or specific types.",
		Args:  cobra.ExactArgs(1),
		RunE:  runMask,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagMaskAll, "all", false, "mask every detection")
	cmd.Flags().BoolVar(&flagMaskAuto, "auto", false, fmt.Sprintf("mask detections with confidence >= %.2f", tui.AutoSelectThreshold))
	cmd.Flags().StringVar(&flagMaskTypes, "types", "", "mask only these types (comma-separated, e.g. AADHAAR,EMAIL)")
	cmd.Flags().StringVarP(&flagMaskOutput, "output", "o", "", "write masked text to this path")
	cmd.Flags().BoolVar(&flagMaskStdout, "stdout", false, "print masked text to stdout instead of a file")
	cmd.Flags().StringVar(&flagMaskSuffix, "suffix", "", "suffix for the masked output file (default .masked)")
}

func runMask(cmd *cobra.Command, args []string) error {
	if !flagMaskAll && !flagMaskAuto && flagMaskTypes == "" {
		return fmt.Errorf("choose a selection: --all, --auto, or --types")
	}

	abs, _ := filepath.Abs(args[0])

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(filepath.Dir(abs)); err == nil {
		lcfg = c
	}

	text, err := extract.Text(abs)
	if err != nil {
		return err
	}

	logger := newLogger()
	detector, closeDetector, err := newDetector(mergeConfigs(lcfg, gcfg), logger)
	if err != nil {
		return fmt.Errorf("model init: %w", err)
	}
	defer closeDetector()

	start := time.Now()
	ds, err := detector.Detect(text)
	if err != nil {
		return fmt.Errorf("detect %s: %w", abs, err)
	}
	ds = filterByConfidence(ds, pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence))

	autoThreshold := pickFloat(0, lcfg.AutoSelect, gcfg.AutoSelect)
	if autoThreshold <= 0 {
		autoThreshold = tui.AutoSelectThreshold
	}
	selected := selectForMasking(ds, autoThreshold)
	if len(selected) == 0 {
		fmt.Fprintln(os.Stderr, "warning: selection is empty, output equals input")
	}
	masked := mask.Apply(text, selected)

	if !flagNoAudit {
		rec := audit.NewRecord(abs, text, selected, time.Since(start))
		rec.Masked = true
		if err := audit.New("").Append(rec); err != nil {
			fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}

	return writeMasked(abs, masked, flagMaskOutput, flagMaskSuffix, flagMaskStdout, lcfg, gcfg)
}

// selectForMasking applies the flag-chosen filters, preserving detection
// order. Filters combine as a union: --auto --types EMAIL keeps the
// high-confidence set plus every EMAIL.
func selectForMasking(ds []types.Detection, autoThreshold float64) []types.Detection {
	if flagMaskAll {
		return ds
	}
	wanted := map[types.PIIType]bool{}
	for _, s := range strings.Split(flagMaskTypes, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		wanted[types.ParseType(strings.ToUpper(s))] = true
	}
	var out []types.Detection
	for _, d := range ds {
		if flagMaskAuto && d.Confidence >= autoThreshold {
			out = append(out, d)
			continue
		}
		if wanted[types.ParseType(string(d.Type))] {
			out = append(out, d)
		}
	}
	return out
}
