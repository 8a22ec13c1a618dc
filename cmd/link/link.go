package link

import (
	"errors"

	"github.com/carapace-sh/carapace"
	cmdOpts "github.com/linkfarm/linkfarm/internal/cmd/opts"
	cmdUtils "github.com/linkfarm/linkfarm/internal/cmd/utils"
	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/spf13/cobra"
)

func LinkCommand() *cobra.Command {
	opts := cmdOpts.LinkOpts{}

	cmd := cobra.Command{
		Use:   "link [flags] LINK TARGET",
		Short: "Create a symbolic link",
		Long: `Create a symbolic link at LINK that points to TARGET.

Missing parent directories of LINK are created. An existing symbolic
link at LINK is replaced; any other file at LINK is left alone and
an error is reported. TARGET is stored exactly as given.`,
		Args: cobra.ExactArgs(2),
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
			opts.LinkPath = args[0]
			opts.TargetPath = args[1]
			return cmdUtils.CommandErrorHandler(linkMain(cmd, &opts))
		},
	}

	cmdUtils.SetHelpFlagText(&cmd)

	cmdUtils.AddOctalModeFlag(cmd.Flags(), &opts.DirMode, "dir-mode", "m", "Create parent directories with octal `mode`")
	cmd.Flags().StringVarP(&opts.Host, "host", "H", "", "Create the link on a remote `host` over SSH")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show verbose logging")

	_ = cmd.RegisterFlagCompletionFunc("dir-mode", cmdUtils.NoCompletions)
	_ = cmd.RegisterFlagCompletionFunc("host", cmdUtils.CompleteHost)

	carapace.Gen(&cmd).PositionalCompletion(
		carapace.ActionFiles(),
		carapace.ActionFiles(),
	)

	return &cmd
}

func linkMain(cmd *cobra.Command, opts *cmdOpts.LinkOpts) error {
	log := logger.FromContext(cmd.Context())
	cfg := settings.FromContext(cmd.Context())

	if opts.DirMode != "" {
		cfg.DirectoryMode = opts.DirMode
	}

	dirMode, err := cfg.DirMode()
	if err != nil {
		log.Error(err)
		return err
	}

	fsys, closeFS, err := cmdUtils.OpenFilesystem(opts.Host, cfg, log)
	if err != nil {
		log.Errorf("failed to open filesystem: %v", err)
		return err
	}
	defer closeFS()

	err = filesystem.AddSymbolicLinkWithMode(fsys, opts.LinkPath, opts.TargetPath, dirMode)
	if err != nil {
		if errors.Is(err, filesystem.ErrNotSymlink) {
			log.Errorf("%v exists and is not a symbolic link; refusing to replace it", opts.LinkPath)
		} else {
			log.Errorf("failed to create link: %v", err)
		}
		return err
	}

	log.Infof("linked %v -> %v", opts.LinkPath, opts.TargetPath)

	return nil
}
