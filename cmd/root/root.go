package root

import (
	"context"
	"fmt"
	"os"

	"github.com/carapace-sh/carapace"
	"github.com/fatih/color"
	aliasesCmd "github.com/linkfarm/linkfarm/cmd/aliases"
	applyCmd "github.com/linkfarm/linkfarm/cmd/apply"
	completionCmd "github.com/linkfarm/linkfarm/cmd/completion"
	linkCmd "github.com/linkfarm/linkfarm/cmd/link"
	statusCmd "github.com/linkfarm/linkfarm/cmd/status"
	"github.com/linkfarm/linkfarm/internal/build"
	cmdOpts "github.com/linkfarm/linkfarm/internal/cmd/opts"
	cmdUtils "github.com/linkfarm/linkfarm/internal/cmd/utils"
	"github.com/linkfarm/linkfarm/internal/constants"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/linkfarm/linkfarm/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func MainCommand(log *logger.ConsoleLogger, cfg *settings.Settings) *cobra.Command {
	opts := cmdOpts.MainOpts{}

	cmd := cobra.Command{
		Use:          "linkfarm",
		Short:        "Create and track symbolic links",
		Long:         "Create symbolic links, and the directories that hold them, locally or over SSH.",
		Version:      build.VersionString(),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for key, value := range opts.ConfigValues {
				if err := cfg.SetValue(key, value); err != nil {
					return fmt.Errorf("failed to set %v: %w", key, err)
				}
			}

			if opts.ColorAlways {
				cfg.UseColor = true
			}
			color.NoColor = !cfg.UseColor
			log.RefreshColorPrefixes()

			ctx := cmd.Context()
			ctx = settings.WithConfig(ctx, cfg)

			if cfg.Syslog {
				syslogLogger, err := logger.NewSyslogLogger(constants.SyslogTag)
				if err != nil {
					log.Warnf("failed to connect to syslog: %v", err)
				} else {
					syslogLogger.SetLogLevel(log.GetLogLevel())
					cobra.OnFinalize(func() { _ = syslogLogger.Close() })
					ctx = logger.WithLogger(ctx, logger.NewMultiLogger(log, syslogLogger))
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	cmdUtils.SetHelpFlagText(&cmd)
	cmd.SetVersionTemplate("linkfarm {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&opts.ColorAlways, "color-always", false, "Always color output when possible")
	cmd.PersistentFlags().StringToStringVar(&opts.ConfigValues, "config", map[string]string{}, "Set a configuration `key=value`")

	cmd.AddCommand(
		aliasesCmd.AliasesCommand(),
		applyCmd.ApplyCommand(),
		completionCmd.CompletionCommand(),
		linkCmd.LinkCommand(),
		statusCmd.StatusCommand(),
	)

	addAliases(&cmd, cfg.EffectiveAliases(), log)

	carapace.Gen(&cmd)

	return &cmd
}

func loadSettings(log logger.Logger) *settings.Settings {
	location := utils.ConfigLocation()

	cfg, err := settings.ParseSettings(location)
	if err != nil {
		log.Errorf("failed to parse settings at %v: %v", location, err)
		log.Warn("using default settings")
		cfg = settings.NewSettings()
	}

	for _, err := range cfg.Validate() {
		log.Warn(err)
	}

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.UseColor = false
	}

	return cfg
}

func Execute() {
	log := logger.NewConsoleLogger()
	cfg := loadSettings(log)

	if !cfg.UseColor {
		color.NoColor = true
		log.RefreshColorPrefixes()
	}

	ctx := logger.WithLogger(context.Background(), log)
	ctx = settings.WithConfig(ctx, cfg)

	cmd := MainCommand(log, cfg)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
