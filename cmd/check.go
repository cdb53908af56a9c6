package cmd

import (
	"github.com/agoraforum/agora/install"
	"github.com/agoraforum/agora/utils/log"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check install prerequisites",
	Run:   runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	checker := install.NewPrereqChecker(".", "public", "assets")
	if checker.Check() {
		log.New().Info("All prerequisite checks passed")
		return
	}
	for _, e := range checker.Errors() {
		log.New().WithField("detail", e.Detail).Error(e.Message)
	}
	log.New().Fatal("Prerequisites not satisfied")
}
