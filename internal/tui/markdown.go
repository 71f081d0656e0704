package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders descriptions with glamour, caching one renderer
// per wrap width. Only the Bubble Tea goroutine touches it.
type markdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Render returns md rendered for width columns, or md itself when glamour
// fails.
func (m *markdownRenderer) Render(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	r := m.renderers[width]
	if r == nil {
		// WithAutoStyle can block on terminal background queries, so the
		// style is always explicit.
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		m.renderers[width] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
