package aliases

import (
	"encoding/json"
	"fmt"

	cmdOpts "github.com/linkfarm/linkfarm/internal/cmd/opts"
	cmdUtils "github.com/linkfarm/linkfarm/internal/cmd/utils"
	"github.com/linkfarm/linkfarm/internal/settings"
	"github.com/spf13/cobra"
)

func AliasesCommand() *cobra.Command {
	opts := cmdOpts.AliasesOpts{}

	cmd := cobra.Command{
		Use:   "aliases",
		Short: "List configured aliases",
		Long:  "List configured aliases and what commands they resolve to.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			aliasesMain(cmd, &opts)
		},
	}

	cmdUtils.SetHelpFlagText(&cmd)

	cmd.Flags().BoolVarP(&opts.DisplayJson, "json", "j", false, "Output aliases in JSON format")

	return &cmd
}

func aliasesMain(cmd *cobra.Command, opts *cmdOpts.AliasesOpts) {
	cfg := settings.FromContext(cmd.Context())
	aliases := cfg.EffectiveAliases()

	if opts.DisplayJson {
		bytes, _ := json.MarshalIndent(aliases, "", "  ")
		fmt.Printf("%v\n", string(bytes))
		return
	}

	fmt.Print(settings.FormatStringSliceMap(aliases))
}
