package status

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/carapace-sh/carapace"
	"github.com/djherbis/times"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	cmdOpts "github.com/linkfarm/linkfarm/internal/cmd/opts"
	cmdUtils "github.com/linkfarm/linkfarm/internal/cmd/utils"
	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/links"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/olekukonko/tablewriter"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	opts := cmdOpts.StatusOpts{}

	cmd := cobra.Command{
		Use:   "status [flags] [QUERY]",
		Short: "Show the state of links in a manifest",
		Long: `Show the state of every link in a manifest.

If QUERY is given, only links whose path fuzzy-matches it are shown,
best matches first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Query = args[0]
			}
			return cmdUtils.CommandErrorHandler(statusMain(cmd, &opts))
		},
	}

	cmdUtils.SetHelpFlagText(&cmd)

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "f", "", "Read links from manifest `file`")
	cmd.Flags().StringVarP(&opts.Host, "host", "H", "", "Inspect the links on a remote `host` over SSH")
	cmd.Flags().BoolVarP(&opts.DisplayJson, "json", "j", false, "Output information in JSON format")

	_ = cmd.RegisterFlagCompletionFunc("manifest", cmdUtils.FileCompletions("toml"))
	_ = cmd.RegisterFlagCompletionFunc("host", cmdUtils.CompleteHost)

	carapace.Gen(&cmd).PositionalCompletion(carapace.ActionValues())

	return &cmd
}

func statusMain(cmd *cobra.Command, opts *cmdOpts.StatusOpts) error {
	log := logger.FromContext(cmd.Context())
	cfg := settings.FromContext(cmd.Context())

	manifestPath := opts.Manifest
	if manifestPath == "" {
		manifestPath = cfg.Manifest
	}

	m, err := cmdUtils.LoadManifest(log, manifestPath)
	if err != nil {
		return err
	}

	fsys, closeFS, err := cmdUtils.OpenFilesystem(opts.Host, cfg, log)
	if err != nil {
		log.Errorf("failed to open filesystem: %v", err)
		return err
	}
	defer closeFS()

	statuses := links.Status(fsys, m.Entries())

	if opts.Query != "" {
		statuses = filterStatuses(statuses, opts.Query)
	}

	if opts.DisplayJson {
		bytes, _ := json.MarshalIndent(statuses, "", "  ")
		fmt.Printf("%v\n", string(bytes))
		return nil
	}

	renderTable(os.Stdout, statuses, opts.Host == "")

	return nil
}

type statusSource []links.EntryStatus

func (s statusSource) String(i int) string {
	return s[i].Entry.Name
}

func (s statusSource) Len() int {
	return len(s)
}

func filterStatuses(statuses []links.EntryStatus, query string) []links.EntryStatus {
	matches := fuzzy.FindFrom(query, statusSource(statuses))

	filtered := make([]links.EntryStatus, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, statuses[match.Index])
	}

	return filtered
}

func renderTable(w io.Writer, statuses []links.EntryStatus, local bool) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	header := []string{"Link", "Target", "State"}
	if local {
		header = append(header, "Modified")
	}
	table.SetHeader(header)

	for _, s := range statuses {
		target := s.Entry.Target
		if s.State == filesystem.LinkRetarget {
			target = fmt.Sprintf("%v (now %v)", s.Entry.Target, s.Current)
		}

		row := []string{s.Entry.Name, target, formatState(s)}

		if local {
			row = append(row, modifiedTime(s))
		}

		table.Append(row)
	}

	table.Render()
}

func formatState(s links.EntryStatus) string {
	if s.Error != "" {
		return color.RedString("error: %v", s.Error)
	}

	switch s.State {
	case filesystem.LinkOK:
		return color.GreenString(s.State.String())
	case filesystem.LinkMissing, filesystem.LinkRetarget:
		return color.YellowString(s.State.String())
	default:
		return color.RedString(s.State.String())
	}
}

func modifiedTime(s links.EntryStatus) string {
	if s.State == filesystem.LinkMissing {
		return "-"
	}

	ts, err := times.Lstat(s.Entry.Path)
	if err != nil {
		return "-"
	}

	return humanize.Time(ts.ModTime())
}
