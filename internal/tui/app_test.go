package tui

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/config"
	"github.com/hy4ri/projtrack/internal/format"
	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui/components"
)

type notification struct{ title, message string }

type testApp struct {
	*App
	notified []notification
	copied   []string
}

func newTestApp(t *testing.T, cfg *config.Config, src api.Source) *testApp {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.UI.MarkdownStyle = "notty"

	ta := &testApp{}
	ta.App = NewApp(Options{
		Store:  store.New(src, format.New(time.UTC), zap.NewNop()),
		Config: cfg,
		Notify: func(title, message string) error {
			ta.notified = append(ta.notified, notification{title, message})
			return nil
		},
		Copy: func(text string) error {
			ta.copied = append(ta.copied, text)
			return nil
		},
		Now: func() time.Time { return time.Unix(50, 0) },
	})
	ta.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return ta
}

// load runs the initial load and feeds its result back in.
func (ta *testApp) load(t *testing.T) tea.Cmd {
	t.Helper()
	_, cmd := ta.Update(ta.loadProjects()())
	return cmd
}

// press sends keys and runs any command they return, feeding the resulting
// message back in.
func (ta *testApp) press(keys ...string) {
	for _, k := range keys {
		_, cmd := ta.Update(key(k))
		ta.run(cmd)
	}
}

func (ta *testApp) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case statusMsg, components.CloseHelpMsg:
		ta.Update(msg)
	}
}

func readyApp(t *testing.T) *testApp {
	t.Helper()
	ta := newTestApp(t, nil, &fakeSource{projects: sampleProjects()})
	ta.load(t)
	return ta
}

func TestAppLoading(t *testing.T) {
	ta := newTestApp(t, nil, &fakeSource{projects: sampleProjects()})
	assert.Contains(t, ta.View(), "Loading projects")

	// Keys are ignored until the store is ready.
	ta.press("enter", "o")
	assert.False(t, ta.detailCtl.Active())

	ta.load(t)
	view := ta.View()
	assert.NotContains(t, view, "Loading projects")
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "Beta")
	assert.Contains(t, view, "3 of 3")
}

func TestAppLoadFailure(t *testing.T) {
	ta := newTestApp(t, nil, &fakeSource{err: errors.New("connection refused")})
	ta.load(t)

	view := ta.View()
	assert.Contains(t, view, "Failed to load projects")
	assert.Contains(t, view, "connection refused")

	_, cmd := ta.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppFilter(t *testing.T) {
	ta := readyApp(t)

	ta.press("o")
	view := ta.View()
	assert.Contains(t, view, "Beta")
	assert.NotContains(t, view, "Alpha")
	assert.Contains(t, view, "1 of 3")

	ta.press("i")
	view = ta.View()
	assert.NotContains(t, view, "Beta")
	assert.Contains(t, view, "Gamma")

	ta.press("a")
	assert.Len(t, ta.tableCtl.Rows(), 3)
}

func TestAppOpenAndNavigate(t *testing.T) {
	ta := readyApp(t)

	ta.press("i", "j", "enter")
	require.True(t, ta.detailCtl.Active())
	assert.Equal(t, "a", ta.detailCtl.Record().ID)
	assert.Contains(t, ta.View(), "3 of 3")

	ta.press("n")
	assert.Equal(t, "b", ta.detailCtl.Record().ID, "next wraps over the full list")
	assert.Contains(t, ta.View(), "1 of 3")

	ta.press("left")
	assert.Equal(t, "a", ta.detailCtl.Record().ID)

	ta.press("esc")
	assert.False(t, ta.detailCtl.Active())
	assert.Equal(t, 1, ta.table.Cursor(), "cursor returns to the last shown project")
}

func TestAppEditSave(t *testing.T) {
	ta := readyApp(t)

	ta.press("enter", "e")
	require.True(t, ta.detailCtl.Editing())
	assert.Contains(t, ta.View(), "EDITING")

	// Filter keys are text while editing.
	ta.press("!", "o")
	ta.press("ctrl+s")

	assert.False(t, ta.detailCtl.Editing())
	rec, err := ta.store.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "beta notes!o", rec.Description)
	assert.Contains(t, ta.View(), "Description saved")
	assert.Equal(t, store.FilterAll, ta.tableCtl.Filter())
}

func TestAppEditCancel(t *testing.T) {
	ta := readyApp(t)

	ta.press("enter", "e", "x", "esc")
	assert.False(t, ta.detailCtl.Editing())
	assert.True(t, ta.detailCtl.Active(), "esc in edit mode only leaves edit mode")

	rec, _ := ta.store.Get("b")
	assert.Equal(t, "beta notes", rec.Description)
}

func TestAppToggleSections(t *testing.T) {
	ta := readyApp(t)
	rec, _ := ta.store.Get("b")

	ta.press("enter")
	assert.Contains(t, ta.View(), rec.DateRange)

	ta.press("2")
	assert.False(t, ta.detailCtl.Expanded(SectionTimeline))
	assert.NotContains(t, ta.View(), rec.DateRange)

	ta.press("2")
	assert.Contains(t, ta.View(), rec.DateRange)
}

func TestAppCopy(t *testing.T) {
	ta := readyApp(t)

	ta.press("j", "y")
	assert.Equal(t, []string{"c"}, ta.copied)
	assert.Contains(t, ta.View(), "Copied project id c")

	ta.press("enter", "y")
	assert.Equal(t, []string{"c", "gamma notes"}, ta.copied)
}

func TestAppCopyFailure(t *testing.T) {
	ta := readyApp(t)
	ta.copy = func(string) error { return errors.New("no clipboard") }

	ta.press("y")
	assert.Contains(t, ta.View(), "Failed to copy: no clipboard")
}

func TestAppHelp(t *testing.T) {
	ta := readyApp(t)

	ta.press("?")
	assert.Contains(t, ta.View(), "Keyboard Shortcuts")

	ta.press("esc")
	assert.NotContains(t, ta.View(), "Keyboard Shortcuts")
}

func TestAppQuit(t *testing.T) {
	ta := readyApp(t)

	_, cmd := ta.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	ta.press("enter", "e")
	_, cmd = ta.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppNotifiesDueSoon(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notify.DueWithinDays = 1

	ta := newTestApp(t, cfg, &fakeSource{projects: sampleProjects()})
	cmd := ta.load(t)
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, ta.notified, 1)
	assert.Equal(t, "Projects due soon", ta.notified[0].title)
	assert.Contains(t, ta.notified[0].message, "Beta")
}

func TestAppNoNotificationByDefault(t *testing.T) {
	ta := newTestApp(t, nil, &fakeSource{projects: sampleProjects()})
	assert.Nil(t, ta.load(t))
	assert.Empty(t, ta.notified)
}

func TestLoadErrorHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing file", fmt.Errorf("load: %w", os.ErrNotExist), "does not exist"},
		{"malformed", fmt.Errorf("load: %w", api.ErrMalformedDocument), `"projects" array`},
		{"not found", fmt.Errorf("load: %w", &api.APIError{StatusCode: 404}), "no document at that URL"},
		{"forbidden", &api.APIError{StatusCode: 403}, "refused access"},
		{"server", &api.APIError{StatusCode: 502}, "Try again later"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loadErrorHint(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}
