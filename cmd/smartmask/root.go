package smartmask

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagMinConfidence float64
	flagModelDir      string
	flagNoModel       bool
	flagDownload      bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool
	flagVerbose       bool
	flagNoAudit       bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the SmartMask CLI.
var rootCmd = &cobra.Command{
	Use:           "smartmask",
	Short:         "Find and mask PII in documents",
	Long:          "SmartMask scans document text for PII (Aadhaar, PAN, phone, email, names, addresses) and selectively masks the detected values.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the SmartMask CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the smartmask version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("smartmask v" + version)
		},
	})

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().Float64Var(&flagMinConfidence, "min-confidence", 0.0, "only show detections with confidence >= value (0-1)")
	rootCmd.PersistentFlags().StringVar(&flagModelDir, "model", "", "directory with NER model artifacts (default: user cache)")
	rootCmd.PersistentFlags().BoolVar(&flagNoModel, "no-model", false, "skip the entity recognizer, rule detection only")
	rootCmd.PersistentFlags().BoolVar(&flagDownload, "download-models", false, "download missing model artifacts before scanning")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update smartmask to the latest release")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoAudit, "no-audit", false, "do not record runs in the audit log")
}
