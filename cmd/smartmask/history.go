package smartmask

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/smartmask/smartmask/internal/audit"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past scans from the audit log",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most this many records")
	cmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "delete the audit log")
}

func runHistory(_ *cobra.Command, _ []string) error {
	if flagHistoryClear {
		if err := audit.New("").Clear(); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "audit history cleared")
		return nil
	}

	records, err := audit.New("").History()
	if err != nil {
		fmt.Fprintln(os.Stderr, "no audit history yet")
		return nil
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	for _, r := range records {
		action := "scan"
		if r.Masked {
			action = "mask"
		}
		fmt.Printf("%s  %-4s  %-40s  %d detections%s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"), action, r.Path, r.Detections, typeCountSuffix(r.TypeCounts))
	}
	return nil
}

func typeCountSuffix(counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := "  ("
	for i, k := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s: %d", k, counts[k])
	}
	return out + ")"
}
