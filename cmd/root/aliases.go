package root

import (
	"fmt"
	"maps"
	"slices"

	"github.com/carapace-sh/carapace"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/utils"
	"github.com/spf13/cobra"
)

func addAliasCmd(parent *cobra.Command, alias string, args []string) error {
	displayedArgs := utils.EscapeAndJoinArgs(args)
	description := fmt.Sprintf("Alias for `%v`.", displayedArgs)

	existingCommands := parent.Commands()
	for _, v := range existingCommands {
		if v.Name() == alias {
			return fmt.Errorf("alias conflicts with existing builtin command")
		}
	}

	if !parent.ContainsGroup("aliases") {
		parent.AddGroup(&cobra.Group{
			ID:    "aliases",
			Title: "Aliases",
		})
	}

	cmd := &cobra.Command{
		Use:                alias,
		Short:              description,
		Long:               description,
		GroupID:            "aliases",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, passedArgs []string) error {
			fullArgsList := append(slices.Clone(args), passedArgs...)

			root := cmd.Root()
			root.SetArgs(fullArgsList)
			return root.Execute()
		},
	}

	parent.AddCommand(cmd)

	carapace.Gen(cmd).PositionalAnyCompletion(carapace.ActionFiles())

	return nil
}

func addAliases(parent *cobra.Command, aliases map[string][]string, log logger.Logger) {
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		if err := addAliasCmd(parent, alias, aliases[alias]); err != nil {
			log.Warnf("failed to add alias '%v': %v", alias, err)
		}
	}
}
