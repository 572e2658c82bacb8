package views

import (
	"fmt"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// ReviewSubmitData feeds the review event picker overlay.
type ReviewSubmitData struct {
	Cursor       int // index into github.Events
	PendingCount int
	Width        int
	Height       int
}

// RenderReviewSubmit renders the review event picker. A comment-only
// review is greyed out when no comments are queued.
func RenderReviewSubmit(styles ui.Styles, d ReviewSubmitData) string {
	t := styles.Theme

	title := styles.Title.Render("Submit Review")
	summary := styles.Muted.Render(fmt.Sprintf("%d queued comment(s)", d.PendingCount))

	var rows string
	for i, ev := range github.Events {
		disabled := ev == github.EventComment && d.PendingCount == 0
		label := ev.Label()
		var line string
		switch {
		case disabled && i == d.Cursor:
			line = "▸ " + styles.ListDimmed.Render(label+"  (no comments queued)")
		case disabled:
			line = "  " + styles.ListDimmed.Render(label+"  (no comments queued)")
		case i == d.Cursor:
			line = "▸ " + lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(label)
		default:
			line = "  " + styles.Body.Render(label)
		}
		rows += line + "\n"
	}

	hint := ui.JoinHorizontal("  ",
		ui.RenderKeyValue(styles, "j/k", "choose"),
		ui.RenderKeyValue(styles, "enter", "body"),
		ui.RenderKeyValue(styles, "esc", "cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(48).
		Render(title + "\n" + summary + "\n\n" + rows + "\n" + hint)

	return ui.PlaceCentre(d.Width, d.Height, box)
}
