package apply

import (
	"fmt"
	"path/filepath"

	"github.com/carapace-sh/carapace"
	cmdOpts "github.com/linkfarm/linkfarm/internal/cmd/opts"
	cmdUtils "github.com/linkfarm/linkfarm/internal/cmd/utils"
	"github.com/linkfarm/linkfarm/internal/links"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/manifest"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/spf13/cobra"
)

func ApplyCommand() *cobra.Command {
	opts := cmdOpts.ApplyOpts{}

	cmd := cobra.Command{
		Use:   "apply [flags] [MANIFEST]",
		Short: "Create all links listed in a manifest",
		Long: `Create all links listed in a TOML manifest.

Links that already point to the right target are left alone. Before an
existing link is pointed elsewhere, confirmation is requested unless
--yes is given or confirmation.always is set. When no answer can be
read, confirmation.empty decides:

` + cmdUtils.AlignedOptions(settings.AvailableConfirmationPromptSettings),
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			log := logger.FromContext(ctx)

			if opts.Verbose {
				log.SetLogLevel(logger.LogLevelDebug)
			}

			ctx = logger.WithLogger(ctx, log)
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Manifest = args[0]
			}
			return cmdUtils.CommandErrorHandler(applyMain(cmd, &opts))
		},
	}

	cmdUtils.SetHelpFlagText(&cmd)

	cmd.Flags().BoolVarP(&opts.Dry, "dry", "d", false, "Show what would be linked without changing anything")
	cmd.Flags().StringVarP(&opts.Host, "host", "H", "", "Create the links on a remote `host` over SSH")
	cmd.Flags().BoolVarP(&opts.AlwaysConfirm, "yes", "y", false, "Replace existing links without asking")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show verbose logging")

	_ = cmd.RegisterFlagCompletionFunc("host", cmdUtils.CompleteHost)

	carapace.Gen(&cmd).PositionalCompletion(
		carapace.ActionFiles(".toml"),
	)

	return &cmd
}

func applyMain(cmd *cobra.Command, opts *cmdOpts.ApplyOpts) error {
	log := logger.FromContext(cmd.Context())
	cfg := settings.FromContext(cmd.Context())

	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = cfg.Manifest
	}

	dirMode, err := cfg.DirMode()
	if err != nil {
		log.Error(err)
		return err
	}

	log.Step("Loading manifest...")

	m, err := cmdUtils.LoadManifest(log, manifestPath)
	if err != nil {
		return err
	}

	if opts.Host != "" && hasRelativeRoot(m) {
		log.Warnf("manifest root is relative; links on %v will be created under the local path %v", opts.Host, m.RootDir())
	}

	entries := m.Entries()
	log.Debugf("loaded %d links from %v", len(entries), manifestPath)

	fsys, closeFS, err := cmdUtils.OpenFilesystem(opts.Host, cfg, log)
	if err != nil {
		log.Errorf("failed to open filesystem: %v", err)
		return err
	}
	defer closeFS()

	var confirm links.ConfirmFunc
	if !opts.AlwaysConfirm && !cfg.Confirmation.Always {
		promptOpts := cmdUtils.ConfirmationOptionsFromSettings(cfg)
		confirm = func(entry manifest.Entry, current string) (bool, error) {
			msg := fmt.Sprintf("%v currently points to %v. Point it to %v instead?", entry.Name, current, entry.Target)
			return cmdUtils.ConfirmationInput(msg, promptOpts)
		}
	}

	if opts.Dry {
		log.Step("Planning links...")
	} else {
		log.Step("Creating links...")
	}

	report, err := links.Apply(fsys, log, entries, links.ApplyOptions{
		DryRun:  opts.Dry,
		DirMode: dirMode,
		Confirm: confirm,
	})

	log.Infof("%d created, %d replaced, %d unchanged, %d skipped, %d failed",
		report.Count(links.ActionCreated),
		report.Count(links.ActionReplaced),
		report.Count(links.ActionUnchanged),
		report.Count(links.ActionSkipped),
		report.Count(links.ActionFailed),
	)

	return err
}

// An unset root falls back to the manifest's own directory, which
// is always absolute.
func hasRelativeRoot(m *manifest.Manifest) bool {
	return m.Root != "" && !filepath.IsAbs(m.Root)
}
