package views

import (
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// CommentDisplay is one comment of a thread, body already rendered to
// terminal lines.
type CommentDisplay struct {
	Author    string
	CreatedAt string
	Lines     []string
}

// CommentViewData feeds the read-only comment thread overlay.
type CommentViewData struct {
	FilePath string
	Line     int
	Resolved bool
	Comments []CommentDisplay
	Scroll   int
	Width    int
	Height   int
}

// RenderCommentView renders the existing comment thread for the cursor
// line as a centred scrollable overlay.
func RenderCommentView(styles ui.Styles, d CommentViewData) string {
	t := styles.Theme

	boxWidth := min(d.Width-4, 80)
	boxHeight := min(d.Height-4, 24)
	innerWidth := boxWidth - 8 // border + padding
	innerHeight := boxHeight - 6

	title := styles.Title.Render("Comments")
	loc := styles.Muted.Render(ui.TruncatePath(d.FilePath, innerWidth-12)) +
		styles.Muted.Render(lineSuffix(d.Line))
	if d.Resolved {
		loc += "  " + styles.ResolvedBadge.Render("✓ resolved")
	}

	var content []string
	for ci, c := range d.Comments {
		if ci > 0 {
			content = append(content, lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("·", innerWidth)))
		}
		header := styles.Author.Render("@"+c.Author) + "  " + styles.Date.Render(c.CreatedAt)
		content = append(content, header)
		content = append(content, c.Lines...)
	}

	scroll := clampScroll(d.Scroll, len(content), innerHeight)
	end := scroll + innerHeight
	if end > len(content) {
		end = len(content)
	}
	body := strings.Join(content[scroll:end], "\n")

	bar := components.RenderScrollbar(styles, innerHeight, len(content), innerHeight, scroll)
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(innerWidth-1).MaxWidth(innerWidth-1).Render(body), bar)
	}

	hint := ui.JoinHorizontal("  ",
		ui.RenderKeyValue(styles, "j/k", "scroll"),
		ui.RenderKeyValue(styles, "z", "resolve/unresolve"),
		ui.RenderKeyValue(styles, "esc", "close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(boxWidth).
		Render(title + "\n" + loc + "\n\n" + body + "\n\n" + hint)

	return ui.PlaceCentre(d.Width, d.Height, box)
}

func lineSuffix(line int) string {
	if line <= 0 {
		return ""
	}
	return ":" + strconv.Itoa(line)
}
