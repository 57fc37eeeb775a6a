package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "netconf-inspect",
		Short:        "netconf-inspect",
		SilenceUsage: true,
		Long:         `Inspect multi-vendor network device configurations: detect, parse, and run compliance checks. Demo harness over the netconf core library.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	verbose bool
	log     = logrus.StandardLogger()
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
