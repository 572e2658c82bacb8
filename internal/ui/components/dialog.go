package components

import (
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// DialogButton is a single labelled choice in a modal dialog.
type DialogButton struct {
	Label string
	Key   string // keyboard shortcut hint shown next to the label
}

// RenderDialog renders a modal dialog with a title, a message, and a row
// of buttons. The button at focused index is highlighted. Key handling
// belongs to the caller; this only draws.
func RenderDialog(styles ui.Styles, title, message string, buttons []DialogButton, focused int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(title)

	activeBtn := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true).Padding(0, 2)
	inactiveBtn := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 2)
	keyHint := lipgloss.NewStyle().Foreground(t.TextSubtle)

	rendered := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		label := b.Label
		if b.Key != "" {
			label = b.Label + " "
		}
		var btn string
		if i == focused {
			btn = activeBtn.Render(label)
		} else {
			btn = inactiveBtn.Render(label)
		}
		if b.Key != "" {
			btn = lipgloss.JoinHorizontal(lipgloss.Top, btn, keyHint.Render(" "+b.Key))
		}
		if i > 0 {
			rendered = append(rendered, "  ")
		}
		rendered = append(rendered, btn)
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	content := titleStr
	if message != "" {
		msg := lipgloss.NewStyle().Foreground(t.TextMuted).Render(message)
		content += "\n\n" + msg
	}
	content += "\n\n" + buttonRow

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(56).
		Render(content)
}
