package smartmask

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smartmask/smartmask/internal/audit"
	"github.com/smartmask/smartmask/internal/config"
	"github.com/smartmask/smartmask/internal/detect"
	"github.com/smartmask/smartmask/internal/extract"
	"github.com/smartmask/smartmask/internal/report"
	"github.com/smartmask/smartmask/internal/types"
	"github.com/smartmask/smartmask/internal/update"
)

var (
	flagInclude    string
	flagExclude    string
	flagMaxBytes   int64
	flagShowValues bool
	flagFailOnPII  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a document or directory for PII",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (directory scans)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs (directory scans)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().BoolVar(&flagShowValues, "show-values", false, "print full detected values instead of shortened ones")
	cmd.Flags().BoolVar(&flagFailOnPII, "fail-on-pii", false, "exit 1 if any PII is detected (CI gate)")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	abs, _ := filepath.Abs(path)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	localRoot := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		localRoot = filepath.Dir(abs)
	}
	if c, err := config.LoadLocal(localRoot); err == nil {
		lcfg = c
	}

	// Friendly banner before scanning
	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'smartmask --self-update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
	}

	logger := newLogger()
	detector, closeDetector, err := newDetector(mergeConfigs(lcfg, gcfg), logger)
	if err != nil {
		return fmt.Errorf("model init: %w", err)
	}
	defer closeDetector()

	minConf := pickFloat(flagMinConfidence, lcfg.MinConfidence, gcfg.MinConfidence)
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		noColor = true
	}

	results, err := scanPath(cmd.Context(), abs, detector, scanSettings{
		include:  pickString(flagInclude, lcfg.Include, gcfg.Include),
		exclude:  pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		maxBytes: pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		minConf:  minConf,
		audit:    !flagNoAudit,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return report.PrintJSON(os.Stdout, results)
	}
	total := 0
	var all []types.Detection
	for _, res := range results {
		report.PrintTable(os.Stdout, res, report.PrintOptions{NoColor: noColor, ShowValues: flagShowValues})
		total += len(res.Detections)
		all = append(all, res.Detections...)
	}
	if len(results) > 1 {
		fmt.Fprintf(os.Stdout, "\nScanned %d documents.\n", len(results))
		report.PrintSummary(os.Stdout, all)
	}

	if flagFailOnPII && total > 0 {
		os.Exit(1)
	}
	return nil
}

type scanSettings struct {
	include  string
	exclude  string
	maxBytes int64
	minConf  float64
	audit    bool
}

// scanPath detects PII in one file, or in every supported document under a
// directory.
func scanPath(ctx context.Context, abs string, detector *detect.Detector, s scanSettings) ([]report.Result, error) {
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}

	auditLog := audit.New("")
	var results []report.Result
	scanOne := func(displayPath, text string) error {
		start := time.Now()
		ds, err := detector.Detect(text)
		if err != nil {
			return fmt.Errorf("detect %s: %w", displayPath, err)
		}
		ds = filterByConfidence(ds, s.minConf)
		results = append(results, report.Result{Path: displayPath, Detections: ds})
		if s.audit {
			if err := auditLog.Append(audit.NewRecord(displayPath, text, ds, time.Since(start))); err != nil {
				fmt.Fprintln(os.Stderr, "audit warning:", err)
			}
		}
		return nil
	}

	if !info.IsDir() {
		text, err := extract.Text(abs)
		if err != nil {
			return nil, err
		}
		if err := scanOne(abs, text); err != nil {
			return nil, err
		}
		return results, nil
	}

	var detectErr error
	walkErr := extract.Walk(ctx, abs, extract.WalkOptions{
		Include:  splitGlobs(s.include),
		Exclude:  splitGlobs(s.exclude),
		MaxBytes: s.maxBytes,
	}, func(rel, text string) {
		if detectErr != nil {
			return
		}
		detectErr = scanOne(rel, text)
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if detectErr != nil {
		return nil, detectErr
	}
	return results, nil
}

// filterByConfidence drops detections below min. Zero min keeps everything,
// including any malformed negative-confidence record.
func filterByConfidence(ds []types.Detection, min float64) []types.Detection {
	if min <= 0 {
		return ds
	}
	var out []types.Detection
	for _, d := range ds {
		if d.Confidence >= min {
			out = append(out, d)
		}
	}
	return out
}

func splitGlobs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

// mergeConfigs overlays local file config over global for the model block,
// which newDetector consumes as one unit.
func mergeConfigs(local, global config.FileConfig) config.FileConfig {
	merged := global
	if local.Model != nil {
		merged.Model = local.Model
	}
	if local.MinConfidence != nil {
		merged.MinConfidence = local.MinConfidence
	}
	if local.NoColor != nil {
		merged.NoColor = local.NoColor
	}
	return merged
}
