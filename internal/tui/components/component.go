// Package components holds sub-models that own a piece of the screen.
package components

import tea "github.com/charmbracelet/bubbletea"

// Component is a self-contained sub-model. The App forwards messages to it
// while it is visible and draws its View in place of the main content.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// CloseHelpMsg asks the App to hide the help overlay.
type CloseHelpMsg struct{}
