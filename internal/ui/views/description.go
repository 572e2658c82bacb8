// Package views renders each panel and overlay from plain data
// structs. Views hold no state: the app model owns cursors, scroll
// offsets, and mode, and passes them in per frame.
package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// DescriptionData feeds the PR description panel.
type DescriptionData struct {
	Number int
	Title  string
	Author string
	State  string
	Lines  []string // markdown-rendered body, media URLs already replaced
	Scroll int
	Width  int
	Height int
}

// RenderDescription renders the PR description panel: a metadata header
// followed by the scrolled body.
func RenderDescription(styles ui.Styles, d DescriptionData) string {
	t := styles.Theme

	title := styles.Title.Render(ui.Truncate(fmt.Sprintf("#%d %s", d.Number, d.Title), d.Width-2))
	state := renderPRState(styles, d.State)
	author := styles.Author.Render("@" + d.Author)
	meta := state + "  " + author

	bodyHeight := d.Height - 3 // title, meta, separator
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(meta + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", max(d.Width-1, 1))) + "\n")

	scroll := clampScroll(d.Scroll, len(d.Lines), bodyHeight)
	end := scroll + bodyHeight
	if end > len(d.Lines) {
		end = len(d.Lines)
	}
	body := strings.Join(d.Lines[scroll:end], "\n")

	bar := components.RenderScrollbar(styles, bodyHeight, len(d.Lines), bodyHeight, scroll)
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(d.Width-1).MaxWidth(d.Width-1).Render(body), bar)
	}
	b.WriteString(body)

	return b.String()
}

func renderPRState(styles ui.Styles, state string) string {
	t := styles.Theme
	fg := t.Success
	switch strings.ToLower(state) {
	case "closed":
		fg = t.Error
	case "merged":
		fg = t.Accent
	}
	return lipgloss.NewStyle().
		Foreground(t.TextInverse).
		Background(fg).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(state))
}

// clampScroll keeps a scroll offset within the valid window for the
// given content and viewport heights.
func clampScroll(scroll, total, visible int) int {
	maxScroll := total - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		return maxScroll
	}
	if scroll < 0 {
		return 0
	}
	return scroll
}
