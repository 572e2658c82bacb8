package views

import (
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/media"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// MediaItem is one attachment listed in the media viewer.
type MediaItem struct {
	Ref    media.Ref
	Status string // e.g. "1024×768", "downloading…", "video", "failed"
}

// MediaViewerData feeds the media viewer overlay.
type MediaViewerData struct {
	Items  []MediaItem
	Cursor int
	Scroll int
	Width  int
	Height int
}

// RenderMediaViewer renders the attachments found in the PR body and
// comments: type, alt text, URL, and download status. Images are saved
// to disk on demand; nothing is drawn inline.
func RenderMediaViewer(styles ui.Styles, d MediaViewerData) string {
	t := styles.Theme

	boxWidth := min(d.Width-4, 90)
	boxHeight := min(d.Height-4, 22)
	innerWidth := boxWidth - 8
	innerHeight := boxHeight - 6

	title := styles.Title.Render("Attachments")

	var content []string
	if len(d.Items) == 0 {
		content = append(content, styles.Muted.Render("No images or videos found in this PR."))
	}
	for i, item := range d.Items {
		icon := "🖼"
		if item.Ref.Type == media.Video {
			icon = "🎬"
		}
		name := item.Ref.Alt
		if name == "" {
			name = "(no description)"
		}
		head := icon + " " + styles.Body.Render(ui.Truncate(name, innerWidth-16)) +
			"  " + styles.Muted.Render(item.Status)
		url := "   " + styles.ListDimmed.Render(ui.Truncate(item.Ref.URL, innerWidth-4))
		if i == d.Cursor {
			head = lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true).Render("▸ "+icon+" "+ui.Truncate(name, innerWidth-18)) +
				"  " + styles.Muted.Render(item.Status)
		}
		content = append(content, head, url)
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
		ui.RenderKeyValue(styles, "j/k", "move"),
		ui.RenderKeyValue(styles, "s", "save to file"),
		ui.RenderKeyValue(styles, "y", "copy url"),
		ui.RenderKeyValue(styles, "esc", "close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(boxWidth).
		Render(title + "\n\n" + body + "\n\n" + hint)

	return ui.PlaceCentre(d.Width, d.Height, box)
}
