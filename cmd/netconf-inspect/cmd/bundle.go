package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cedarpeak/netconf/internal/corpus"
)

// bundleCmd walks the embedded sample-config corpus and reports detection and
// parse results for every bundled file, the way a ./... smoke test would.
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "detect and parse every embedded sample configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := corpus.Walk(corpus.Bundled())
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%-32s vendor=%-16s top_level_nodes=%d\n", r.Path, r.Vendor.ID, len(r.Roots))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bundleCmd)
}
