package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/editor"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/wrap"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CommentInputData feeds the comment composer overlay.
type CommentInputData struct {
	Title     string // e.g. "New comment" or "Review body"
	FilePath  string // empty for the review body editor
	StartLine int
	EndLine   int
	Editor    *editor.TextEditor
	Width     int
	Height    int
}

// RenderCommentInput renders the multi-line comment editor as a centred
// overlay with a visible cursor and a scrollbar when the text overflows.
func RenderCommentInput(styles ui.Styles, d CommentInputData) string {
	t := styles.Theme

	boxWidth := min(d.Width-4, 72)
	innerWidth := boxWidth - 8

	title := styles.Title.Render(d.Title)
	var loc string
	if d.FilePath != "" {
		where := fmt.Sprintf("%s:%d", d.FilePath, d.EndLine)
		if d.StartLine > 0 && d.StartLine != d.EndLine {
			where = fmt.Sprintf("%s:%d-%d", d.FilePath, d.StartLine, d.EndLine)
		}
		loc = "\n" + styles.Muted.Render(ui.TruncatePath(where, innerWidth))
	}

	body := renderEditor(styles, d.Editor, innerWidth, EditorDisplayWidth(d.Width))

	hint := ui.JoinHorizontal("  ",
		ui.RenderKeyValue(styles, "ctrl+s", "confirm"),
		ui.RenderKeyValue(styles, "esc", "cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(boxWidth).
		Render(title + loc + "\n\n" + body + "\n\n" + hint)

	return ui.PlaceCentre(d.Width, d.Height, box)
}

// EditorDisplayWidth returns the wrap width the comment overlay gives
// its editor at the given terminal width. Key handlers must set the
// editor's display width to this value so its cursor and scroll
// arithmetic agree with the rendered rows.
func EditorDisplayWidth(termWidth int) int {
	boxWidth := min(termWidth-4, 72)
	w := boxWidth - 10 // padding, inner border, scrollbar column
	if w < 1 {
		w = 1
	}
	return w
}

// renderEditor draws the editor's visible rows with a block cursor,
// wrapping at w, the same width EditorDisplayWidth reports.
func renderEditor(styles ui.Styles, ed *editor.TextEditor, textWidth, w int) string {
	t := styles.Theme

	var rows []string
	for _, line := range ed.LinesFromScroll() {
		for _, chunk := range wrap.Chunks(line, w) {
			rows = append(rows, chunk)
			if len(rows) > editor.VisibleHeight {
				break
			}
		}
		if len(rows) > editor.VisibleHeight {
			break
		}
	}
	if len(rows) > editor.VisibleHeight {
		rows = rows[:editor.VisibleHeight]
	}
	for len(rows) < editor.VisibleHeight {
		rows = append(rows, "")
	}

	col, row := ed.CursorVisualPosition()
	if row >= 0 && row < len(rows) {
		rows[row] = overlayCursor(styles, rows[row], col)
	}

	body := strings.Join(rows, "\n")
	if total, pos, ok := ed.ScrollbarState(editor.VisibleHeight); ok {
		bar := components.RenderScrollbar(styles, editor.VisibleHeight, total, editor.VisibleHeight, pos)
		if bar != "" {
			body = lipgloss.JoinHorizontal(lipgloss.Top,
				lipgloss.NewStyle().Width(textWidth-1).MaxWidth(textWidth-1).Render(body), bar)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Width(textWidth).
		Render(body)
}

// overlayCursor inverts the cell at display column col, or appends a
// block cursor when col is at the end of the row.
func overlayCursor(styles ui.Styles, row string, col int) string {
	t := styles.Theme
	cursorStyle := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Text)

	w := 0
	for i, r := range row {
		if w == col {
			return row[:i] + cursorStyle.Render(string(r)) + row[i+len(string(r)):]
		}
		w += runewidth.RuneWidth(r)
	}
	return row + cursorStyle.Render(" ")
}
