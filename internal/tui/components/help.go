package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/projtrack/internal/tui/styles"
)

// HelpModel renders the help view with keyboard shortcuts.
type HelpModel struct {
	width, height int
	items         [][]string
}

// NewHelp creates a new HelpModel.
func NewHelp() *HelpModel {
	return &HelpModel{}
}

// Init implements Component.
func (h *HelpModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (h *HelpModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseHelpMsg{} }
		}
	}
	return h, nil
}

// View implements Component.
// Items are {section, ""} headers, {key, desc} pairs or {"", ""} spacers.
// The "Table" section goes in the left column and everything after it in the right one.
func (h *HelpModel) View() string {
	if len(h.items) == 0 {
		return styles.Dialog.Render("No keybindings registered")
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	var left, right strings.Builder
	current := &left

	keyStyle := styles.HelpKey.Width(12).Align(lipgloss.Right).PaddingRight(2)
	for _, item := range h.items {
		if len(item) < 2 {
			continue
		}
		key, desc := item[0], item[1]

		switch {
		case desc == "" && key != "":
			if key != "Table" && key != "General" {
				current = &right
			} else {
				current = &left
			}
			current.WriteString("\n" + styles.Subtitle.Render(" "+key+" ") + "\n")
		case key == "" && desc == "":
			current.WriteString("\n")
		default:
			current.WriteString(keyStyle.Render(key) + styles.HelpDesc.Render(desc) + "\n")
		}
	}

	colWidth := h.width / 2
	if colWidth > 50 {
		colWidth = 50
	}
	columnStyle := lipgloss.NewStyle().Width(colWidth).PaddingLeft(2).PaddingRight(2)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(left.String()),
		columnStyle.Render(right.String()),
	))
	b.WriteString("\n\n")

	footer := styles.HelpDesc.Render("Press ESC or ? to close")
	b.WriteString(lipgloss.NewStyle().Width(h.width).Align(lipgloss.Center).Render(footer))

	return b.String()
}

// SetSize implements Component.
func (h *HelpModel) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// SetItems sets the help entries.
func (h *HelpModel) SetItems(items [][]string) {
	h.items = items
}
