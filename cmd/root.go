package cmd

import (
	"github.com/agoraforum/agora/utils/log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agora",
	Short: "Agora Forum Application",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logJSON {
			log.SetJSONFormat()
		}
		if verbose {
			log.SetDebug()
		}
	},
}

var (
	verbose bool
	logJSON bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show verbose")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in json format")
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
