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
)

var (
	flagReviewOutput string
	flagReviewStdout bool
	flagSuffix       string
)

func init() {
	cmd := &cobra.Command{
		Use:   "review <file>",
		Short: "Review detections interactively and mask the selection",
		Args:  cobra.ExactArgs(1),
		RunE:  runReview,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagReviewOutput, "output", "o", "", "write masked text to this path")
	cmd.Flags().BoolVar(&flagReviewStdout, "stdout", false, "print masked text to stdout instead of a file")
	cmd.Flags().StringVar(&flagSuffix, "suffix", "", "suffix for the masked output file (default .masked)")
}

func runReview(cmd *cobra.Command, args []string) error {
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

	selected, apply, err := tui.Run(abs, text, ds)
	if err != nil {
		return err
	}
	if !apply {
		fmt.Fprintln(os.Stderr, "review ended without masking")
		return nil
	}

	masked := mask.Apply(text, selected)

	if !flagNoAudit {
		rec := audit.NewRecord(abs, text, selected, time.Since(start))
		rec.Masked = true
		if err := audit.New("").Append(rec); err != nil {
			fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}

	return writeMasked(abs, masked, flagReviewOutput, flagSuffix, flagReviewStdout, lcfg, gcfg)
}

// writeMasked places the masked text where the flags say: stdout, an
// explicit path, or a sibling file derived from the source name. The
// source document is never overwritten.
func writeMasked(src, masked, outputPath, suffix string, toStdout bool, lcfg, gcfg config.FileConfig) error {
	if toStdout {
		_, err := fmt.Fprint(os.Stdout, masked)
		return err
	}
	if outputPath == "" {
		outputPath = maskedPath(src, pickString(suffix, lcfg.OutputSuffix, gcfg.OutputSuffix))
	}
	if sameFile(src, outputPath) {
		return fmt.Errorf("refusing to overwrite source document %s", src)
	}
	if err := os.WriteFile(outputPath, []byte(masked), 0600); err != nil {
		return fmt.Errorf("write masked output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "masked text written to %s\n", outputPath)
	return nil
}

// maskedPath inserts the suffix before the extension: doc.txt -> doc.masked.txt.
func maskedPath(src, suffix string) string {
	if suffix == "" {
		suffix = ".masked"
	}
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + suffix + ext
}

func sameFile(a, b string) bool {
	aa, _ := filepath.Abs(a)
	bb, _ := filepath.Abs(b)
	return aa == bb
}
