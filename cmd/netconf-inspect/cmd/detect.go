package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cedarpeak/netconf"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "run vendor auto-detection on a config file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		sch := netconf.Detect(string(buf))
		fmt.Printf("%s (%s)\n", sch.ID, sch.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
