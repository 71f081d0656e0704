package tui

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/format"
	"github.com/hy4ri/projtrack/internal/store"
)

type fakeSource struct {
	projects []api.Project
	err      error
}

func (f *fakeSource) FetchProjects(ctx context.Context) ([]api.Project, error) {
	return f.projects, f.err
}

// sampleProjects sorts to beta, gamma, alpha. Only beta is active.
func sampleProjects() []api.Project {
	return []api.Project{
		{
			ID: "a", Name: "Alpha",
			StartDate: api.Num(0), EndDate: api.Num(300),
			CurrentStep: api.Num(4), TotalSteps: api.Num(4),
			Description: "alpha notes",
		},
		{
			ID: "b", Name: "Beta",
			StartDate: api.Num(0), EndDate: api.Num(100),
			CurrentStep: api.Num(1), TotalSteps: api.Num(4),
			Active:      true,
			Description: "beta notes",
			Extra:       map[string]json.RawMessage{"owner": json.RawMessage(`"gina"`)},
		},
		{
			ID: "c", Name: "Gamma",
			StartDate: api.Num(0), EndDate: api.Num(200),
			CurrentStep: api.Num(0), TotalSteps: api.Num(0),
			Description: "gamma notes",
		},
	}
}

func loadedStore(t *testing.T, projects ...api.Project) *store.Store {
	t.Helper()
	s := store.New(&fakeSource{projects: projects}, format.New(time.UTC), zap.NewNop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

// key builds the KeyMsg bubbletea would deliver for s.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
