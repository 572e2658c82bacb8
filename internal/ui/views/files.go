package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// FilesData feeds the changed-file list panel.
type FilesData struct {
	Files         []github.DiffFile
	Cursor        int
	Scroll        int
	PendingCounts map[string]int // path -> queued comment count
	CommentCounts map[string]int // path -> existing remote comment count
	Width         int
	Height        int
}

// RenderFiles renders the changed-file list with status letters,
// add/delete counts, and comment markers.
func RenderFiles(styles ui.Styles, d FilesData) string {
	if len(d.Files) == 0 {
		return styles.Muted.Render("  No files changed")
	}

	scroll := clampScroll(d.Scroll, len(d.Files), d.Height)
	end := scroll + d.Height
	if end > len(d.Files) {
		end = len(d.Files)
	}

	var b strings.Builder
	for i := scroll; i < end; i++ {
		f := d.Files[i]
		line := renderFileRow(styles, f, d, i == d.Cursor)
		b.WriteString(line)
		if i+1 < end {
			b.WriteByte('\n')
		}
	}

	body := b.String()
	bar := components.RenderScrollbar(styles, end-scroll, len(d.Files), d.Height, scroll)
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(d.Width-1).MaxWidth(d.Width-1).Render(body), bar)
	}
	return body
}

func renderFileRow(styles ui.Styles, f github.DiffFile, d FilesData, selected bool) string {
	t := styles.Theme

	statusStyle := styles.FileModified
	switch f.StatusChar() {
	case 'A':
		statusStyle = styles.FileAdded
	case 'D':
		statusStyle = styles.FileDeleted
	case 'R':
		statusStyle = styles.FileRenamed
	}
	status := statusStyle.Render(string(f.StatusChar()))

	var badges string
	if n := d.PendingCounts[f.Filename]; n > 0 {
		badges += " " + styles.PendingMarker.Render(fmt.Sprintf("✎%d", n))
	}
	if n := d.CommentCounts[f.Filename]; n > 0 {
		badges += " " + styles.CommentBadge.Render(fmt.Sprintf("●%d", n))
	}

	changes := styles.Muted.Render(f.ChangesDisplay())
	fixedW := 2 + 2 + lipgloss.Width(changes) + lipgloss.Width(badges) + 2
	path := ui.TruncatePath(f.Filename, max(d.Width-fixedW, 8))

	line := fmt.Sprintf(" %s %s %s%s", status, path, changes, badges)
	if selected {
		return lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true).Render(line)
	}
	return line
}
