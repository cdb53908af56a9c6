package cmd

import (
	"github.com/agoraforum/agora/config"
	"github.com/agoraforum/agora/install"
	"github.com/agoraforum/agora/utils/log"

	"github.com/spf13/cobra"
)

var (
	useDefaults bool
	sourceFile  string
	configOut   string

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install agora forum",
		Run:   runInstall,
	}
)

func init() {
	installCmd.Flags().BoolVarP(&useDefaults, "defaults", "d", false, "skip prompts, use built-in defaults")
	installCmd.Flags().StringVarP(&sourceFile, "file", "f", "", "declarative install config, json or yaml")
	installCmd.Flags().StringVarP(&configOut, "config", "c", "config.yml", "config file output location")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) {
	var src install.Source
	var err error
	switch {
	case useDefaults:
		src = install.NewDefaultsSource()
	case sourceFile != "":
		if src, err = install.NewFileSource(sourceFile); err != nil {
			log.NewEntry(err).Fatal("Failed to read install config file")
		}
	default:
		prompt, err := install.NewPromptSource()
		if err != nil {
			log.NewEntry(err).Fatal("Failed to start interactive install")
		}
		defer prompt.Close()
		src = prompt
	}
	// Fatal exits without running defers, the prompt must release the
	// terminal first.
	fatal := func(err error, msg string) {
		if prompt, ok := src.(*install.PromptSource); ok {
			prompt.Close()
		}
		log.NewEntry(err).Fatal(msg)
	}

	inst := install.New(&install.Options{
		Source:     src,
		Checker:    install.NewPrereqChecker(".", "public", "assets"),
		ConfigPath: configOut,
		PublicPath: "public",
		AssetPath:  "assets",
		Version:    config.Version,
		Verbose:    verbose,
	})
	if err := inst.Run(); err != nil {
		fatal(err, "Failed to install")
	}
}
