package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modgraph/pkg/curriculum"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ProgrammeListModel - Interactive programme selection
// =============================================================================

// ProgrammeItem is one row of the programme picker.
type ProgrammeItem struct {
	Name     string
	Years    int
	Modules  int
	Required int
}

// ProgrammeListModel is the bubbletea model for interactive programme selection.
type ProgrammeListModel struct {
	Items    []ProgrammeItem
	Cursor   int
	Selected *ProgrammeItem
	Height   int
	Offset   int
}

// NewProgrammeListModel creates a picker over the programmes of cat.
func NewProgrammeListModel(cat *curriculum.Catalog) ProgrammeListModel {
	var items []ProgrammeItem
	for _, p := range cat.Programmes() {
		items = append(items, ProgrammeItem{
			Name:     p.Name(),
			Years:    p.YearCount(),
			Modules:  p.AllModules().Len(),
			Required: p.Required().Len(),
		})
	}
	return ProgrammeListModel{Items: items, Height: 15}
}

func (m ProgrammeListModel) Init() tea.Cmd {
	return nil
}

func (m ProgrammeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Items) == 0 {
				return m, nil
			}
			item := m.Items[m.Cursor]
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m ProgrammeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Programme"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ render  q quit"))
	b.WriteString("\n\n")

	if len(m.Items) == 0 {
		b.WriteString(listDimStyle.Render("  no programmes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Items))
	var rows [][]string
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, it.Name,
			strconv.Itoa(it.Years), strconv.Itoa(it.Modules), strconv.Itoa(it.Required)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Programme", "Years", "Modules", "Required").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 2 {
				base = base.Align(lipgloss.Right)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return base.Foreground(colorDim)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))

	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Pick a programme interactively and render it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := c.loadCatalog(ctx, args, false)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewProgrammeListModel(cat), tea.WithOutput(uiOut), tea.WithContext(ctx))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("programme picker: %w", err)
			}
			sel := final.(ProgrammeListModel).Selected
			if sel == nil {
				printInfo("Nothing selected")
				return nil
			}

			if len(args) > 0 {
				opts.input = args[0]
			}
			opts.programme = sel.Name
			popts, err := c.pipelineOptions(&opts)
			if err != nil {
				return err
			}
			return c.runRender(ctx, popts, &opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg, png, jpg, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
