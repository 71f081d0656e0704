// Package tui provides the terminal user interface for the project tracker.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Navigation
	Up       Key
	Down     Key
	Top      Key
	Bottom   Key
	HalfUp   Key
	HalfDown Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key
	Copy   Key

	// Table filters
	FilterAll      Key
	FilterActive   Key
	FilterInactive Key

	// Detail view
	Edit     Key
	Save     Key
	Next     Key
	Prev     Key
	Section1 Key
	Section2 Key
	Section3 Key
	Section4 Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Up:       Key{Key: "k", Help: "up"},
		Down:     Key{Key: "j", Help: "down"},
		Top:      Key{Key: "g", Help: "top (gg)"},
		Bottom:   Key{Key: "G", Help: "bottom"},
		HalfUp:   Key{Key: "ctrl+u", Help: "half page up"},
		HalfDown: Key{Key: "ctrl+d", Help: "half page down"},

		Select: Key{Key: "enter", Help: "open project"},
		Back:   Key{Key: "esc", Help: "back"},
		Quit:   Key{Key: "q", Help: "quit"},
		Help:   Key{Key: "?", Help: "help"},
		Copy:   Key{Key: "y", Help: "copy"},

		FilterAll:      Key{Key: "a", Help: "all projects"},
		FilterActive:   Key{Key: "o", Help: "active projects"},
		FilterInactive: Key{Key: "i", Help: "inactive projects"},

		Edit:     Key{Key: "e", Help: "edit description"},
		Save:     Key{Key: "ctrl+s", Help: "save description"},
		Next:     Key{Key: "n", Help: "next project"},
		Prev:     Key{Key: "p", Help: "previous project"},
		Section1: Key{Key: "1", Help: "toggle description"},
		Section2: Key{Key: "2", Help: "toggle timeline"},
		Section3: Key{Key: "3", Help: "toggle progress"},
		Section4: Key{Key: "4", Help: "toggle details"},
	}
}

// KeyState tracks multi-key sequences (like 'gg').
type KeyState struct {
	LastKey  string
	WaitingG bool // Waiting for second 'g' in 'gg'
}

// HandleKey processes a key press and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, keymap Keymap) (string, bool) {
	key := msg.String()

	// Handle 'gg' sequence (go to top)
	if ks.WaitingG {
		ks.WaitingG = false
		if key == "g" {
			return "top", true
		}
		// If not 'g', reset and process normally
	}

	if key == keymap.Top.Key {
		ks.WaitingG = true
		ks.LastKey = key
		return "", true // Key consumed, waiting for next
	}

	switch key {
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Bottom.Key:
		return "bottom", true
	case keymap.HalfUp.Key, "pgup":
		return "half_up", true
	case keymap.HalfDown.Key, "pgdown":
		return "half_down", true
	case keymap.Select.Key:
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key, "ctrl+c":
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Copy.Key:
		return "copy", true
	case keymap.FilterAll.Key:
		return "filter_all", true
	case keymap.FilterActive.Key:
		return "filter_active", true
	case keymap.FilterInactive.Key:
		return "filter_inactive", true
	case keymap.Edit.Key:
		return "edit", true
	case keymap.Save.Key:
		return "save", true
	case keymap.Next.Key, "right":
		return "next", true
	case keymap.Prev.Key, "left":
		return "prev", true
	case keymap.Section1.Key:
		return "toggle_1", true
	case keymap.Section2.Key:
		return "toggle_2", true
	case keymap.Section3.Key:
		return "toggle_3", true
	case keymap.Section4.Key:
		return "toggle_4", true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.LastKey = ""
}

// HelpItems returns a slice of key-description pairs for the help view.
func (k Keymap) HelpItems() [][]string {
	return [][]string{
		{"Table", ""},
		{k.Up.Key + "/" + k.Down.Key, "Move up/down"},
		{"gg/" + k.Bottom.Key, "Go to top/bottom"},
		{k.HalfUp.Key + "/" + k.HalfDown.Key, "Half page up/down"},
		{k.Select.Key, "Open project details"},
		{k.FilterAll.Key, "Show all projects"},
		{k.FilterActive.Key, "Show active projects"},
		{k.FilterInactive.Key, "Show inactive projects"},
		{k.Copy.Key, "Copy project id"},
		{"", ""},
		{"General", ""},
		{k.Help.Key, "Toggle help"},
		{k.Quit.Key, "Quit"},
		{"", ""},
		{"Project Details", ""},
		{k.Edit.Key, "Edit description"},
		{k.Save.Key, "Save description"},
		{k.Back.Key, "Cancel edit / back to table"},
		{k.Next.Key + "/→", "Next project"},
		{k.Prev.Key + "/←", "Previous project"},
		{"1-4", "Expand/collapse sections"},
		{k.Up.Key + "/" + k.Down.Key, "Scroll"},
		{k.Copy.Key, "Copy description"},
	}
}
