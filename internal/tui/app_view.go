package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/tui/styles"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	if a.showHelp {
		return a.helpComp.View()
	}

	var content string
	switch {
	case a.loading:
		content = a.spinner.View() + " Loading projects..."
	case a.err != nil:
		content = a.renderLoadError()
	case a.detailCtl.Active():
		content = a.viewport.View()
	default:
		content = RenderTable(TableView{
			Filter:  a.tableCtl.Filter(),
			Keymap:  a.keymap,
			Table:   a.table.View(),
			Shown:   len(a.tableCtl.Rows()),
			Total:   a.store.Len(),
			Skipped: a.store.Skipped(),
		})
	}

	return styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, content, a.renderStatusBar()))
}

func (a *App) renderLoadError() string {
	var b strings.Builder
	b.WriteString(styles.ErrorText.Render("Failed to load projects") + "\n\n")
	b.WriteString(a.err.Error() + "\n\n")
	if hint := loadErrorHint(a.err); hint != "" {
		b.WriteString(hint + "\n\n")
	}
	b.WriteString(styles.HelpDesc.Render("Press q to quit"))
	return b.String()
}

func loadErrorHint(err error) string {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "The project file does not exist. Check source.url or pass --source."
	case errors.Is(err, api.ErrMalformedDocument):
		return "The document must be a JSON object with a \"projects\" array."
	}
	if apiErr, ok := api.IsAPIError(err); ok {
		switch {
		case apiErr.IsNotFound():
			return "The server has no document at that URL. Check source.url or pass --source."
		case apiErr.IsForbidden():
			return "The server refused access to the document."
		case apiErr.IsServerError():
			return "The server failed. Try again later."
		}
	}
	return ""
}

// renderStatusBar shows the last status message or the key hints for the
// current mode.
func (a *App) renderStatusBar() string {
	width := a.contentWidth()

	if a.statusMsg != "" {
		style := styles.StatusBarSuccess
		if a.statusErr {
			style = styles.StatusBarError
		}
		return styles.StatusBar.Width(width).Render(style.Render(a.statusMsg))
	}

	var hints [][2]string
	switch {
	case a.loading || a.err != nil:
		hints = [][2]string{{a.keymap.Quit.Key, "quit"}}
	case a.detailCtl.Editing():
		hints = [][2]string{{a.keymap.Save.Key, "save"}, {a.keymap.Back.Key, "cancel"}}
	case a.detailCtl.Active():
		hints = [][2]string{
			{a.keymap.Edit.Key, "edit"},
			{a.keymap.Next.Key + "/" + a.keymap.Prev.Key, "next/prev"},
			{"1-4", "sections"},
			{a.keymap.Back.Key, "back"},
			{a.keymap.Help.Key, "help"},
		}
	default:
		hints = [][2]string{
			{a.keymap.Select.Key, "open"},
			{fmt.Sprintf("%s/%s/%s", a.keymap.FilterAll.Key, a.keymap.FilterActive.Key, a.keymap.FilterInactive.Key), "filter"},
			{a.keymap.Copy.Key, "copy id"},
			{a.keymap.Help.Key, "help"},
			{a.keymap.Quit.Key, "quit"},
		}
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.StatusBarKey.Render(h[0]) + styles.StatusBarText.Render(" "+h[1])
	}
	return styles.StatusBar.Width(width).Render(strings.Join(parts, styles.StatusBarText.Render(" • ")))
}
