package smartmask

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartmask/smartmask/internal/catalog"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detectors",
		Short: "List detection rules and entity types",
		Run: func(_ *cobra.Command, _ []string) {
			for _, r := range catalog.Rules() {
				fmt.Printf("%-8s confidence %.2f  pattern %s\n", r.Type, r.Confidence, r.Pattern.String())
			}
			fmt.Printf("%-8s confidence 0.75  source NER (PERSON)\n", "NAME")
			fmt.Printf("%-8s confidence 0.70  source NER (GPE, LOC)\n", "ADDRESS")
		},
	}
	rootCmd.AddCommand(cmd)
}
