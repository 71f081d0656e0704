package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestApplyColorMode(t *testing.T) {
	original := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(original) })

	ApplyColorMode("always")
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile())

	ApplyColorMode("auto")
	assert.Equal(t, termenv.TrueColor, lipgloss.ColorProfile(), "auto leaves the profile alone")

	ApplyColorMode("never")
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
	assert.Equal(t, "plain", Title.Render("plain"))
}
