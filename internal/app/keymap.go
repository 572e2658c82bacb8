package app

import (
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings used across the application. Two-key
// sequences (gg, ]c, [c, ]h, [h) are completed through the model's
// pending-key buffer, so only their leading keys appear here.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	NextPanel  key.Binding
	PrevPanel  key.Binding
	Panel1     key.Binding
	Panel2     key.Binding
	Panel3     key.Binding
	Panel4     key.Binding

	Up       key.Binding
	Down     key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding // leading "g" of gg
	Bottom   key.Binding
	Bracket  key.Binding // leading "]" / "["

	Select  key.Binding
	Comment key.Binding
	Open    key.Binding
	Confirm key.Binding
	Back    key.Binding

	Submit      key.Binding
	Wrap        key.Binding
	LineNumbers key.Binding
	Resolve     key.Binding
	Media       key.Binding
	Copy        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),

		NextPanel: key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab/l", "next panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab", "h"), key.WithHelp("h", "prev panel")),
		Panel1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "description")),
		Panel2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "commits")),
		Panel3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "files")),
		Panel4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "diff")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		HalfUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "page up")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+f", "pgdown"), key.WithHelp("ctrl+f", "page down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("gg", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Bracket:  key.NewBinding(key.WithKeys("]", "["), key.WithHelp("]c/[c ]h/[h", "next/prev change, hunk")),

		Select:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select lines")),
		Comment: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open / confirm")),
		Confirm: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back / cancel")),

		Submit:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "submit review")),
		Wrap:        key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "toggle wrap")),
		LineNumbers: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle line numbers")),
		Resolve:     key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "resolve/unresolve thread")),
		Media:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "attachments")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
	}
}

// HelpSections builds the help overlay content from the keymap.
func (k KeyMap) HelpSections() map[string][]components.HelpEntry {
	return map[string][]components.HelpEntry{
		"Navigation": {
			{Key: "j / ↓", Desc: "Move down"},
			{Key: "k / ↑", Desc: "Move up"},
			{Key: "gg / G", Desc: "Top / bottom"},
			{Key: "ctrl+d / ctrl+u", Desc: "Half page down / up"},
			{Key: "ctrl+f / ctrl+b", Desc: "Full page down / up"},
		},
		"Panels": {
			{Key: "tab / shift+tab", Desc: "Next / previous panel"},
			{Key: "h / l", Desc: "Previous / next panel"},
			{Key: "1-4", Desc: "Focus panel directly"},
		},
		"Diff": {
			{Key: "]c / [c", Desc: "Next / previous change block"},
			{Key: "]h / [h", Desc: "Next / previous hunk"},
			{Key: "w", Desc: "Toggle word wrap"},
			{Key: "n", Desc: "Toggle line numbers"},
			{Key: "y", Desc: "Copy selected lines"},
		},
		"Comments": {
			{Key: "v", Desc: "Select line range"},
			{Key: "c", Desc: "Comment on cursor/selection"},
			{Key: "c (description)", Desc: "Conversation comment"},
			{Key: "enter", Desc: "View existing comments"},
			{Key: "z", Desc: "Resolve / unresolve thread"},
		},
		"Review": {
			{Key: "S", Desc: "Submit review"},
			{Key: "ctrl+s", Desc: "Confirm comment / body"},
			{Key: "o", Desc: "Attachments viewer"},
		},
		"General": {
			{Key: "r", Desc: "Refresh PR data"},
			{Key: "?", Desc: "Toggle this help"},
			{Key: "q", Desc: "Quit"},
		},
	}
}
