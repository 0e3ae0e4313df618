package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/curriculum"
	"github.com/matzehuels/modgraph/pkg/pipeline"
)

// programmesCommand creates the programmes command.
func (c *CLI) programmesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "programmes [file]",
		Aliases: []string{"ls"},
		Short:   "List the programmes of a curriculum",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalog(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			writeProgrammeTable(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

// loadCatalog reads the curriculum named by args, or the configured input.
func (c *CLI) loadCatalog(ctx context.Context, args []string, strict bool) (*curriculum.Catalog, error) {
	opts := pipeline.Options{Input: c.Config.Input, Strict: strict}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	return pipeline.NewRunner(nil, nil, loggerFromContext(ctx)).Load(ctx, opts)
}

// programmeRows returns one table row per programme, sorted by name.
func programmeRows(cat *curriculum.Catalog) [][]string {
	var rows [][]string
	for _, p := range cat.Programmes() {
		rows = append(rows, []string{
			p.Name(),
			strconv.Itoa(p.YearCount()),
			strconv.Itoa(p.AllModules().Len()),
			strconv.Itoa(p.Required().Len()),
		})
	}
	return rows
}

func writeProgrammeTable(w io.Writer, cat *curriculum.Catalog) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Programme", "Years", "Modules", "Required").
		Rows(programmeRows(cat)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			default:
				return cellStyle.Align(lipgloss.Right)
			}
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d programmes, %d modules",
		len(cat.ProgrammeNames()), len(cat.Modules()))))
}
