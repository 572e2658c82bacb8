package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// CommitsData feeds the commit list panel.
type CommitsData struct {
	Commits  []github.CommitInfo
	Cursor   int
	Selected int // index of the commit whose diff is being reviewed
	Scroll   int
	Width    int
	Height   int
}

// RenderCommits renders the PR commit list. The reviewed commit carries
// a marker; the cursor row is highlighted.
func RenderCommits(styles ui.Styles, d CommitsData) string {
	t := styles.Theme
	if len(d.Commits) == 0 {
		return styles.Muted.Render("  No commits")
	}

	scroll := clampScroll(d.Scroll, len(d.Commits), d.Height)
	end := scroll + d.Height
	if end > len(d.Commits) {
		end = len(d.Commits)
	}

	var b strings.Builder
	for i := scroll; i < end; i++ {
		c := d.Commits[i]
		marker := "  "
		if i == d.Selected {
			marker = styles.KeyBind.Render("▸ ")
		}
		hash := styles.CommitHash.Render(c.ShortSHA())
		subj := styles.CommitMsg.Render(ui.Truncate(c.MessageSummary(), d.Width-14))
		line := fmt.Sprintf("%s%s %s", marker, hash, subj)
		if i == d.Cursor {
			line = lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true).Render(line)
		}
		b.WriteString(line)
		if i+1 < end {
			b.WriteByte('\n')
		}
	}

	body := b.String()
	bar := components.RenderScrollbar(styles, end-scroll, len(d.Commits), d.Height, scroll)
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(d.Width-1).MaxWidth(d.Width-1).Render(body), bar)
	}
	return body
}
