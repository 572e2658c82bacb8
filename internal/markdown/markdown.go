// Package markdown renders PR descriptions and comment bodies for the
// terminal via glamour.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minWrapWidth keeps glamour from producing degenerate output in very
// narrow panes.
const minWrapWidth = 20

// Render converts markdown to styled terminal text wrapped to width.
// On renderer errors the raw markdown is returned so content is never
// lost.
func Render(source string, width int, dark bool) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	wrapWidth := width
	if wrapWidth < minWrapWidth {
		wrapWidth = minWrapWidth
	}
	stylePath := "light"
	if dark {
		stylePath = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(stylePath),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return source
	}
	rendered, err := r.Render(source)
	if err != nil {
		return source
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderLines is Render split into lines for viewport scrolling.
func RenderLines(source string, width int, dark bool) []string {
	out := Render(source, width, dark)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
