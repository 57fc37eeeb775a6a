package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cedarpeak/netconf"
	"github.com/cedarpeak/netconf/rules"
)

var rulesVendor string

var rulesCmd = &cobra.Command{
	Use:   "rules <file>",
	Short: "parse a config file and run the builtin ruleset against it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		roots, err := netconf.Parse(string(buf), netconf.Options{Vendor: rulesVendor})
		if err != nil {
			return err
		}
		vendor := rulesVendor
		if vendor == "" {
			vendor = netconf.Detect(string(buf)).ID
		}
		results := netconf.RunRules(vendor, roots, rules.Builtin)
		for _, r := range results {
			fmt.Printf("[%s] %s: %s (line %d)\n", r.Level, r.RuleID, r.Message, r.Loc.StartLine)
		}
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVar(&rulesVendor, "vendor", "", "vendor schema id (default: auto-detect)")
	rootCmd.AddCommand(rulesCmd)
}
