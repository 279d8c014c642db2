package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/selection"
)

// printList renders the catalog as a table of identity, alias and
// description, in registry order.
func printList(w io.Writer, reg *catalog.Registry) {
	rows := make([][]string, 0, reg.Len())
	for _, it := range reg.Items() {
		alias := ""
		if it.Alias != it.ID {
			alias = it.Alias
		}
		rows = append(rows, []string{it.ID, alias, it.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "SHORT NAME", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return StyleValue.Padding(0, 1)
			}
			return StyleDim.Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
}

// printPlan shows what a run would install, marking prerequisites the
// resolver added on top of the user's choice.
func printPlan(w io.Writer, reg *catalog.Registry, userSelected, resolved selection.Set) {
	plan := resolved.InOrder(reg.IDs())
	if len(plan) == 0 {
		printInfo(w, "Nothing selected")
		return
	}

	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("Plan (%d items)", len(plan))))
	width := 0
	for _, id := range plan {
		width = max(width, len(id))
	}
	for _, id := range plan {
		line := "  " + StyleValue.Render(id)
		if !userSelected.Has(id) {
			by := selection.RequiredBy(reg, resolved, reg.IDs(), id)
			line += strings.Repeat(" ", width-len(id)) + "  " +
				StyleWarning.Render("required by "+strings.Join(by, ", "))
		}
		fmt.Fprintln(w, line)
	}
}
