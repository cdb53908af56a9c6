package cmd

import (
	"fmt"

	"github.com/agoraforum/agora/config"

	"github.com/spf13/cobra"
)

var (
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show agora version",
		Run:   version,
	}
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

func version(cmd *cobra.Command, args []string) {
	fmt.Printf("agora version %v\n", config.Version)
}
