package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui/components"
	"github.com/hy4ri/projtrack/internal/tui/utils"
)

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if a.detailCtl.Active() {
		a.refreshDetail()
	}
	return a, cmd
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return nil

	case spinner.TickMsg:
		if !a.loading {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case errMsg:
		a.loading = false
		a.err = msg.err
		a.logger.Error("failed to load projects", zap.Error(msg.err))
		return nil

	case storeReadyMsg:
		a.loading = false
		a.logger.Info("projects loaded", zap.Int("count", msg.count), zap.Int("skipped", msg.skipped))
		a.tableCtl.Render()
		a.refreshTable()
		if msg.skipped > 0 {
			a.setStatus(utils.Pluralize(msg.skipped, "malformed project")+" skipped", true)
		}
		return a.notifyDueSoon()

	case statusMsg:
		a.setStatus(msg.msg, msg.err)
		return nil

	case components.CloseHelpMsg:
		a.showHelp = false
		return nil
	}

	// Cursor blink and friends.
	if a.detailCtl.Editing() {
		var cmd tea.Cmd
		a.editor, cmd = a.editor.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Only ctrl+c is truly global
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if a.showHelp {
		_, cmd := a.helpComp.Update(msg)
		return cmd
	}

	// Nothing to drive until the store is ready.
	if a.loading || a.err != nil {
		if msg.String() == a.keymap.Quit.Key {
			return tea.Quit
		}
		return nil
	}

	if a.detailCtl.Editing() {
		return a.handleEditKeyMsg(msg)
	}

	action, ok := a.keyState.HandleKey(msg, a.keymap)
	if !ok || action == "" {
		return nil
	}
	a.statusMsg = ""

	switch action {
	case "quit":
		return tea.Quit
	case "help":
		a.showHelp = true
		return nil
	}

	if a.detailCtl.Active() {
		return a.handleDetailAction(action)
	}
	return a.handleTableAction(action)
}

// handleEditKeyMsg routes keys while the description editor is open.
func (a *App) handleEditKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case a.keymap.Save.Key:
		a.detailCtl.Save(a.editor.Value())
		a.editor.Blur()
		a.setStatus("Description saved", false)
		return nil
	case a.keymap.Back.Key:
		a.detailCtl.Cancel()
		a.editor.Blur()
		a.setStatus("Edit discarded", false)
		return nil
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return cmd
}

func (a *App) handleTableAction(action string) tea.Cmd {
	switch action {
	case "up":
		a.table.MoveUp(1)
	case "down":
		a.table.MoveDown(1)
	case "top":
		a.table.GotoTop()
	case "bottom":
		a.table.GotoBottom()
	case "half_up":
		a.table.MoveUp(max(1, a.table.Height()/2))
	case "half_down":
		a.table.MoveDown(max(1, a.table.Height()/2))
	case "filter_all":
		a.selectFilter(store.FilterAll)
	case "filter_active":
		a.selectFilter(store.FilterActive)
	case "filter_inactive":
		a.selectFilter(store.FilterInactive)
	case "select":
		a.openSelected()
	case "copy":
		if rec, ok := a.tableCtl.RowAt(a.table.Cursor()); ok {
			return a.copyText(rec.ID, "project id "+rec.ID)
		}
	}
	return nil
}

func (a *App) handleDetailAction(action string) tea.Cmd {
	switch action {
	case "up":
		a.viewport.LineUp(1)
	case "down":
		a.viewport.LineDown(1)
	case "top":
		a.viewport.GotoTop()
	case "bottom":
		a.viewport.GotoBottom()
	case "half_up":
		a.viewport.HalfViewUp()
	case "half_down":
		a.viewport.HalfViewDown()
	case "back":
		a.closeDetail()
	case "edit":
		text, ok := a.detailCtl.Edit()
		if !ok {
			return nil
		}
		a.editor.SetValue(text)
		a.editor.SetWidth(max(20, a.contentWidth()-4))
		a.editor.SetHeight(max(3, a.viewport.Height/2))
		return tea.Batch(a.editor.Focus(), textarea.Blink)
	case "next":
		if _, ok := a.detailCtl.Next(); ok {
			a.viewport.GotoTop()
		}
	case "prev":
		if _, ok := a.detailCtl.Prev(); ok {
			a.viewport.GotoTop()
		}
	case "toggle_1", "toggle_2", "toggle_3", "toggle_4":
		n := int(action[len(action)-1] - '1')
		a.detailCtl.ToggleSection(Sections()[n])
	case "copy":
		if rec := a.detailCtl.Record(); rec != nil {
			return a.copyText(rec.Description, "description: "+utils.FirstLine(rec.Description))
		}
	}
	return nil
}

func (a *App) selectFilter(kind store.FilterKind) {
	a.tableCtl.OnFilterSelect(kind)
	a.refreshTable()
	a.table.SetCursor(0)
}

func (a *App) openSelected() {
	row, ok := a.tableCtl.RowAt(a.table.Cursor())
	if !ok {
		return
	}
	rec, err := a.tableCtl.OnRowSelect(row.ID)
	if err != nil {
		a.logger.Warn("cannot open project", zap.String("id", row.ID), zap.Error(err))
		a.setStatus(err.Error(), true)
		return
	}
	a.detailCtl.Open(rec)
	a.viewport.GotoTop()
}

// closeDetail returns to the table with the cursor on the last shown
// project when the filter still includes it.
func (a *App) closeDetail() {
	last := a.detailCtl.Record()
	a.detailCtl.Exit()
	a.tableCtl.Render()
	a.refreshTable()
	if last == nil {
		return
	}
	for i, r := range a.tableCtl.Rows() {
		if r.ID == last.ID {
			a.table.SetCursor(i)
			return
		}
	}
}

func (a *App) copyText(text, what string) tea.Cmd {
	copyFn := a.copy
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return statusMsg{msg: "Failed to copy: " + err.Error(), err: true}
		}
		return statusMsg{msg: "Copied " + utils.TruncateString(what, 40)}
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.statusMsg = msg
	a.statusErr = isErr
}

// resize lays the components out for a new terminal size.
func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	// App padding (2), status bar (1), title and filter bar (3), table header (2)
	a.table.SetHeight(max(3, height-8))
	a.refreshTable()

	a.viewport.Width = a.contentWidth()
	a.viewport.Height = max(5, height-3)
	if a.detailCtl.Editing() {
		a.editor.SetWidth(max(20, a.contentWidth()-4))
	}

	a.helpComp.SetSize(width, height)
}

func (a *App) contentWidth() int {
	return max(20, a.width-4)
}

// refreshTable pushes the controller rows into the table component.
func (a *App) refreshTable() {
	cols := TableColumns(a.contentWidth())
	a.table.SetRows(nil)
	a.table.SetColumns(cols)
	a.table.SetRows(TableRows(a.tableCtl.Rows(), cols[0].Width))
}

// refreshDetail re-renders the detail session into the viewport.
func (a *App) refreshDetail() {
	pos, total := a.detailCtl.Position()
	expanded := make(map[Section]bool, len(Sections()))
	for _, sec := range Sections() {
		expanded[sec] = a.detailCtl.Expanded(sec)
	}
	a.viewport.SetContent(RenderDetail(DetailView{
		Record:   a.detailCtl.Record(),
		Editing:  a.detailCtl.Editing(),
		Expanded: expanded,
		Editor:   a.editor.View(),
		Position: pos,
		Total:    total,
		Width:    a.contentWidth(),
		Markdown: a.markdown.Render,
	}))
}
