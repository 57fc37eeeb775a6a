package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/cedarpeak/netconf"
)

var (
	parseVendor string
	parseRepr   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "parse a config file into its ConfigNode tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		roots, err := netconf.Parse(string(buf), netconf.Options{Vendor: parseVendor})
		if err != nil {
			return err
		}
		if parseRepr {
			repr.Println(roots)
			return nil
		}
		for _, r := range roots {
			printNode(r, 0)
		}
		return nil
	},
}

func printNode(n *netconf.ConfigNode, depth int) {
	prefix := ""
	for i := 0; i < depth; i++ {
		prefix += "  "
	}
	fmt.Printf("%s[%s] %s (lines %d-%d)\n", prefix, n.Type, n.ID, n.Loc.StartLine, n.Loc.EndLine)
	for _, c := range n.Children {
		printNode(c, depth+1)
	}
}

func init() {
	parseCmd.Flags().StringVar(&parseVendor, "vendor", "", "vendor schema id (default: auto-detect)")
	parseCmd.Flags().BoolVar(&parseRepr, "repr", false, "pretty-print the raw tree with alecthomas/repr")
	rootCmd.AddCommand(parseCmd)
}
