package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/devsetup/pkg/catalog"
	"github.com/matzehuels/devsetup/pkg/selection"
)

// Menu styles
var (
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	menuGroupStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	menuItemStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	menuAutoStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	menuDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

const menuHints = "space toggle  ↑↓/jk move  h/l parent/child  a all  n none  enter install  q quit"

// =============================================================================
// menuModel - Interactive item selection
// =============================================================================

// menuModel is the bubbletea model for the selection menu. All checkbox
// logic lives in the Checklist; the model only maps keys and draws rows.
type menuModel struct {
	list   *selection.Checklist
	rows   []catalog.Ref
	cursor int
	offset int
	height int
	status string

	confirmed bool
	aborted   bool
}

func newMenuModel(reg *catalog.Registry) menuModel {
	m := menuModel{
		list:   selection.NewChecklist(reg),
		height: 20,
	}
	for _, n := range reg.Nodes() {
		m.rows = append(m.rows, n.Ref())
	}
	return m
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.confirmed = true
			return m, tea.Quit
		case "up", "k":
			m.move(m.cursor - 1)
		case "down", "j":
			m.move(m.cursor + 1)
		case "left", "h":
			m.move(m.parentRow())
		case "right", "l":
			m.move(m.cursor + 1)
		case " ", "x":
			if len(m.rows) > 0 {
				ref := m.rows[m.cursor]
				m.status = m.describe(m.list.Toggle(ref))
			}
		case "a":
			m.status = m.describe(m.list.SetAll(true))
		case "n":
			m.status = m.describe(m.list.SetAll(false))
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
		m.move(m.cursor)
	}
	return m, nil
}

// move places the cursor on row i, clamped, and scrolls it into view.
func (m *menuModel) move(i int) {
	m.cursor = min(max(i, 0), max(len(m.rows)-1, 0))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// parentRow returns the row of the cursor's enclosing group, or the cursor
// itself at the root.
func (m menuModel) parentRow() int {
	if len(m.rows) == 0 {
		return 0
	}
	reg := m.list.Registry()
	n, _ := reg.Node(m.rows[m.cursor])
	if n.ParentID() == "" {
		return m.cursor
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].ID == n.ParentID() {
			return i
		}
	}
	return m.cursor
}

// describe turns a checklist change into the status line.
func (m menuModel) describe(ch selection.Change) string {
	var parts []string
	for _, r := range ch.Retained {
		parts = append(parts, fmt.Sprintf("%s stays selected: required by %s", r.ID, strings.Join(r.By, ", ")))
	}
	var auto []string
	for _, id := range ch.Added {
		if m.list.Auto(id) {
			auto = append(auto, id)
		}
	}
	if len(auto) > 0 {
		parts = append(parts, "auto-selected "+strings.Join(auto, ", "))
	}
	return strings.Join(parts, "; ")
}

// Selected returns the user's explicit selection once the menu was
// confirmed.
func (m menuModel) Selected() (selection.Set, bool) {
	if !m.confirmed {
		return nil, false
	}
	return m.list.UserSelected(), true
}

func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dev Environment Setup"))
	b.WriteString("\n\n")

	reg := m.list.Registry()
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		ref := m.rows[i]
		n, _ := reg.Node(ref)

		cursor := "  "
		if i == m.cursor {
			cursor = menuCursorStyle.Render("▸ ")
		}
		box := "[ ]"
		if m.list.Checked(ref) {
			box = "[x]"
		}
		indent := strings.Repeat("  ", reg.Depth(ref.ID))

		label := n.Title()
		var suffix string
		switch node := n.(type) {
		case *catalog.Group:
			label = menuGroupStyle.Render(label)
		case *catalog.Item:
			label = menuItemStyle.Render(label)
			if m.list.Auto(node.ID) {
				suffix += " " + menuAutoStyle.Render("(required)")
			}
			if node.Description != "" {
				suffix += "  " + menuDimStyle.Render(node.Description)
			}
		}
		fmt.Fprintf(&b, "%s%s%s %s%s\n", cursor, indent, box, label, suffix)
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(menuAutoStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(menuDimStyle.Render(menuHints))
	b.WriteString("\n")
	return b.String()
}

// runMenu shows the menu and returns the confirmed user selection. ok is
// false when the user aborted.
func runMenu(ctx context.Context, reg *catalog.Registry, in io.Reader, out io.Writer) (selection.Set, bool, error) {
	p := tea.NewProgram(newMenuModel(reg),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	finalModel, err := p.Run()
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	if err != nil {
		return nil, false, fmt.Errorf("menu: %w", err)
	}
	fm, ok := finalModel.(menuModel)
	if !ok {
		return nil, false, nil
	}
	sel, ok := fm.Selected()
	return sel, ok, nil
}
