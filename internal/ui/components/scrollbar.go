package components

import (
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// It shows a thumb (filled block) proportional to the visible portion,
// positioned according to the scroll offset.
//
// Returns an empty string if all content fits (no scrolling needed).
//
//	Parameters:
//	  styles  – application styles (for theming)
//	  height  – total height of the scrollbar track (rows)
//	  total   – total number of content rows
//	  visible – number of rows visible at once
//	  pos     – current scroll offset in rows (0-based)
func RenderScrollbar(styles ui.Styles, height, total, visible, pos int) string {
	if total <= visible || height < 1 {
		return ""
	}

	t := styles.Theme

	// Thumb size: proportional to visible/total, min 1 row.
	thumbSize := height * visible / total
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > height {
		thumbSize = height
	}

	// Thumb position.
	maxOffset := height - thumbSize
	maxPos := total - visible
	thumbStart := 0
	if maxPos > 0 {
		thumbStart = pos * maxOffset / maxPos
	}
	if thumbStart < 0 {
		thumbStart = 0
	}
	if thumbStart > maxOffset {
		thumbStart = maxOffset
	}

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	thumbChar := "█"
	trackChar := "░"

	var b strings.Builder
	b.Grow(height * 4)
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render(thumbChar))
		} else {
			b.WriteString(trackStyle.Render(trackChar))
		}
	}
	return b.String()
}
