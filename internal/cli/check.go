package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/errors"
	"github.com/matzehuels/modgraph/pkg/subgraph"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report configuration faults in a curriculum",
		Long: `Check loads a curriculum and reports faults that rendering tolerates:
dependencies on modules no programme places in a year, required modules
without a year, and modules listed in more than one year of a programme.
Every programme is then computed with all relation kinds shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog(cmd.Context(), args, false)
			if err != nil {
				return err
			}

			findings := cat.Validate()
			for _, f := range findings {
				printError("%s %s", StyleDim.Render(string(errors.GetCode(f))), errors.UserMessage(f))
			}

			_, failures := subgraph.NewComputer(cat.Dependencies()).
				ComputeAll(cat.Programmes(), subgraph.AllKinds())
			for _, f := range failures {
				printError("%s", f.Error())
			}

			if n := len(findings) + len(failures); n > 0 {
				printDetail("%d modules, %d programmes", len(cat.Modules()), len(cat.ProgrammeNames()))
				return errors.New(errors.ErrCodeInvalidInput, "%d problem(s) found", n)
			}
			printSuccess("No problems found")
			printDetail("%d modules, %d programmes", len(cat.Modules()), len(cat.ProgrammeNames()))
			return nil
		},
	}
}
