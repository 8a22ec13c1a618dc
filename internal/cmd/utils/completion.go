package cmdUtils

import (
	"os"

	"github.com/linkfarm/linkfarm/internal/constants"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/linkfarm/linkfarm/internal/ssh"
	"github.com/linkfarm/linkfarm/internal/utils"
	"github.com/spf13/cobra"
)

// Prepare command resources that are needed for completion, but that
// otherwise need to be retrieved from the Cobra command context.
//
// Only for use in carapace completion functions.
func PrepareCompletionResources() (logger.Logger, *settings.Settings) {
	var log logger.Logger
	if debugMode := os.Getenv(constants.DebugModeEnvVar); debugMode != "" {
		log = logger.NewConsoleLogger()
	} else {
		log = logger.NewNoOpLogger()
	}

	cfg, err := settings.ParseSettings(utils.ConfigLocation())
	if err != nil {
		cfg = settings.NewSettings()
	}

	return log, cfg
}

func CompleteHost(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	log, cfg := PrepareCompletionResources()

	hosts, err := ssh.KnownHostNames(cfg.SSH)
	if err != nil {
		log.Debugf("failed to gather some hosts: %v", err)
	}

	return hosts, cobra.ShellCompDirectiveNoFileComp
}

func FileCompletions(extensions ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(extensions) != 0 {
			return extensions, cobra.ShellCompDirectiveFilterFileExt
		} else {
			return nil, cobra.ShellCompDirectiveDefault
		}
	}
}

func NoCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
