package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui/styles"
	"github.com/hy4ri/projtrack/internal/tui/utils"
)

// Fixed column widths; the name column takes what is left.
const (
	dueWidth      = 12
	rangeWidth    = 24
	progressWidth = 16
	statusWidth   = 8
	barWidth      = 10
	minNameWidth  = 12
)

// TableColumns lays out the project table for a terminal width.
func TableColumns(width int) []table.Column {
	// Each cell has one column of padding on both sides.
	name := width - (dueWidth + rangeWidth + progressWidth + statusWidth) - 5*2
	if name < minNameWidth {
		name = minNameWidth
	}
	return []table.Column{
		{Title: "Project", Width: name},
		{Title: "Due", Width: dueWidth},
		{Title: "Dates", Width: rangeWidth},
		{Title: "Progress", Width: progressWidth},
		{Title: "Status", Width: statusWidth},
	}
}

// TableRows turns records into table rows, in the given order.
func TableRows(records []*store.Record, nameWidth int) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			utils.TruncateString(r.Title(), nameWidth),
			r.PrettyEndDate,
			r.DateRange,
			fmt.Sprintf("%s %d%%", ProgressBar(r.ProgressRatio, barWidth), r.ProgressRatio),
			statusText(r.Active),
		}
	}
	return rows
}

func statusText(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// ProgressBar draws ratio (a percentage) as a width-cell bar. The fill is
// clamped to the bar even when the ratio is not.
func ProgressBar(ratio, width int) string {
	filled := ratio * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// RenderFilterBar draws the filter buttons with active highlighted.
func RenderFilterBar(active store.FilterKind, keymap Keymap) string {
	keys := map[store.FilterKind]string{
		store.FilterAll:      keymap.FilterAll.Key,
		store.FilterActive:   keymap.FilterActive.Key,
		store.FilterInactive: keymap.FilterInactive.Key,
	}

	var parts []string
	for _, kind := range store.Filters() {
		label := fmt.Sprintf("%s %s", keys[kind], kind.Label())
		if kind == active {
			parts = append(parts, styles.FilterActive.Render(label))
		} else {
			parts = append(parts, styles.Filter.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// TableView is everything RenderTable needs.
type TableView struct {
	Filter  store.FilterKind
	Keymap  Keymap
	Table   string // rendered bubbles table
	Shown   int
	Total   int
	Skipped int
}

// RenderTable draws the table screen.
func RenderTable(v TableView) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Projects"))
	b.WriteString(styles.HelpDesc.Render(fmt.Sprintf("  %d of %d", v.Shown, v.Total)))
	if v.Skipped > 0 {
		b.WriteString(styles.StatusBarError.UnsetBackground().Render(fmt.Sprintf("  (%d skipped)", v.Skipped)))
	}
	b.WriteString("\n")
	b.WriteString(styles.FilterBar.Render(RenderFilterBar(v.Filter, v.Keymap)))
	b.WriteString("\n")

	if v.Shown == 0 {
		empty := "No projects"
		if v.Filter != store.FilterAll {
			empty = "No " + v.Filter.String() + " projects"
		}
		b.WriteString("\n" + styles.HelpDesc.Render("  "+empty))
		return b.String()
	}

	b.WriteString(v.Table)
	return b.String()
}

// DetailView is everything RenderDetail needs.
type DetailView struct {
	Record   *store.Record
	Editing  bool
	Expanded map[Section]bool
	Editor   string // rendered textarea, used while Editing
	Position int
	Total    int
	Width    int
	Markdown func(md string, width int) string
}

// RenderDetail draws one project. It only reads v.
func RenderDetail(v DetailView) string {
	r := v.Record
	if r == nil {
		return styles.HelpDesc.Render("No project selected")
	}

	var b strings.Builder

	header := styles.Title.Render(r.Title())
	if v.Editing {
		header += "  " + styles.EditBadge.Render("EDITING")
	}
	if v.Total > 0 {
		header += styles.HelpDesc.Render(fmt.Sprintf("  %d of %d", v.Position, v.Total))
	}
	if v.Width > 0 {
		header = ansi.Truncate(header, v.Width, "…")
	}
	b.WriteString(header + "\n")

	status := styles.StatusInactive.Render("inactive")
	if r.Active {
		status = styles.StatusActive.Render("active")
	}
	b.WriteString(styles.HelpDesc.Render("id "+r.ID+" · ") + status + "\n")
	b.WriteString(styles.HelpDesc.Render(strings.Repeat("─", max(10, min(v.Width, 60)))) + "\n")

	for i, sec := range Sections() {
		expanded := v.Expanded[sec]
		// The editor stays visible while editing even if its section is collapsed.
		if sec == SectionDescription && v.Editing {
			expanded = true
		}
		b.WriteString(sectionHeader(sec, i+1, expanded) + "\n")
		if !expanded {
			continue
		}
		b.WriteString(sectionBody(sec, v) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func sectionHeader(sec Section, n int, expanded bool) string {
	if expanded {
		return styles.DetailSectionHeader.Render(fmt.Sprintf("▾ %s (%d)", sec.Title(), n))
	}
	return styles.DetailSectionCollapsed.Render(fmt.Sprintf("▸ %s (%d)", sec.Title(), n))
}

func sectionBody(sec Section, v DetailView) string {
	r := v.Record
	switch sec {
	case SectionDescription:
		if v.Editing {
			return v.Editor
		}
		if strings.TrimSpace(r.Description) == "" {
			return styles.DetailDescription.Render(styles.HelpDesc.Render("No description"))
		}
		if v.Markdown != nil {
			if md := v.Markdown(r.Description, v.Width-4); md != "" {
				return md
			}
		}
		return styles.DetailDescription.Render(r.Description)

	case SectionTimeline:
		return field("Due", r.PrettyEndDate) + "\n" + field("Dates", r.DateRange)

	case SectionProgress:
		bar := styles.ProgressFilled.Render(ProgressBar(r.ProgressRatio, 20))
		if r.ProgressRatio > 100 {
			bar = styles.ProgressOver.Render(ProgressBar(r.ProgressRatio, 20))
		}
		return field("Complete", fmt.Sprintf("%s %d%%", bar, r.ProgressRatio)) + "\n" +
			field("Step", stepText(r))

	case SectionDetails:
		if len(r.Extra) == 0 {
			return styles.DetailDescription.Render(styles.HelpDesc.Render("No additional fields"))
		}
		keys := make([]string, 0, len(r.Extra))
		for k := range r.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = field(k, utils.TruncateString(rawText(r.Extra[k]), max(10, v.Width-16)))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

func field(label, value string) string {
	return "  " + styles.DetailLabel.Render(label) + styles.DetailValue.Render(value)
}

func stepText(r *store.Record) string {
	num := func(n float64, ok bool) string {
		if !ok {
			return "?"
		}
		return fmt.Sprintf("%g", n)
	}
	return num(r.CurrentStep.Value, r.CurrentStep.Valid) + " of " + num(r.TotalSteps.Value, r.TotalSteps.Valid)
}

// rawText shows JSON strings without quotes and everything else as compact JSON.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// RenderPlainTable draws records as a bordered text table, for non-interactive output.
func RenderPlainTable(records []*store.Record) string {
	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PROJECT", "DUE", "DATES", "PROGRESS", "STATUS")
	for _, r := range records {
		t.Row(r.ID, r.Title(), r.PrettyEndDate, r.DateRange, fmt.Sprintf("%d%%", r.ProgressRatio), statusText(r.Active))
	}
	return t.Render()
}
