package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/wrap"
	"github.com/charmbracelet/lipgloss"
)

const (
	// markerCols is the fixed left strip for pending/comment markers.
	markerCols = 2
	// gutterChange is the one-sided line-number gutter: "%4d │".
	gutterChange = 6
	// gutterContext is the two-sided gutter: "%4d %4d │".
	gutterContext = 11
	// scrollbarCols is the right-edge scrollbar column.
	scrollbarCols = 1
)

// GutterWidth returns the line-number gutter width for a line kind.
// Hunk headers never get a gutter.
func GutterWidth(kind diff.LineKind, lineNumbers bool) int {
	if !lineNumbers || kind == diff.Header {
		return 0
	}
	if kind == diff.Context {
		return gutterContext
	}
	return gutterChange
}

// TextWidth returns the columns available for patch text at the given
// panel width. The app uses this to build the wrap offset table, so it
// must match what RenderDiff consumes per row.
func TextWidth(panelWidth int, kind diff.LineKind, lineNumbers bool) int {
	w := panelWidth - markerCols - GutterWidth(kind, lineNumbers) - scrollbarCols
	if w < 1 {
		return 1
	}
	return w
}

// DiffData feeds the diff panel.
type DiffData struct {
	Patch *diff.Patch
	// Display holds highlighted display lines aligned 1:1 with the
	// patch. nil means render from the raw patch text.
	Display     []string
	LineMap     diff.LineMap
	Offsets     wrap.Table // offset table, non-nil when Wrap is on
	Wrap        bool
	LineNumbers bool

	Cursor    int
	Selecting bool
	Anchor    int  // selection anchor, valid when Selecting
	LineMode  bool // cursor/selection highlighting active

	// Scroll is in visual rows when Wrap is on, logical lines
	// otherwise.
	Scroll int

	CommentCounts map[int]int  // logical line -> existing comment count
	PendingLines  map[int]bool // logical lines with queued comments

	Width  int
	Height int
}

// RenderDiff renders the unified diff panel with markers, optional
// line-number gutter, soft wrap, and cursor/selection highlighting.
func RenderDiff(styles ui.Styles, d DiffData) string {
	if d.Patch == nil || d.Patch.LineCount() == 0 {
		return styles.Muted.Render("  No diff for this file")
	}

	lo, hi := -1, -1
	if d.LineMode {
		lo, hi = d.Cursor, d.Cursor
		if d.Selecting {
			lo, hi = d.Anchor, d.Cursor
			if lo > hi {
				lo, hi = hi, lo
			}
		}
	}

	gutters := buildGutters(d.Patch, d.LineNumbers)

	var rows []string
	var total, pos int

	if d.Wrap && d.Offsets != nil {
		total = d.Offsets.Total()
		pos = clampScroll(d.Scroll, total, d.Height)
		logical := d.Offsets.ToLogical(pos)
		skip := pos - d.Offsets.Offset(logical)
		for len(rows) < d.Height && logical < d.Patch.LineCount() {
			lineRows := renderWrappedLine(styles, d, gutters, logical, lo, hi)
			for _, r := range lineRows {
				if skip > 0 {
					skip--
					continue
				}
				if len(rows) == d.Height {
					break
				}
				rows = append(rows, r)
			}
			logical++
		}
	} else {
		total = d.Patch.LineCount()
		pos = clampScroll(d.Scroll, total, d.Height)
		end := pos + d.Height
		if end > total {
			end = total
		}
		for i := pos; i < end; i++ {
			rows = append(rows, renderFlatLine(styles, d, gutters, i, lo, hi))
		}
	}

	body := strings.Join(rows, "\n")
	bar := components.RenderScrollbar(styles, min(d.Height, len(rows)), total, d.Height, pos)
	if bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(d.Width-scrollbarCols).MaxWidth(d.Width-scrollbarCols).Render(body), bar)
	}
	return body
}

// renderFlatLine renders one logical line without wrapping, truncated
// to the panel width.
func renderFlatLine(styles ui.Styles, d DiffData, gutters []string, i, lo, hi int) string {
	raw := d.Patch.Line(i)
	kind := diff.Classify(raw)
	tw := TextWidth(d.Width, kind, d.LineNumbers)

	if kind == diff.Header {
		header := diff.PrettyHunkHeader(raw, tw)
		return strings.Repeat(" ", markerCols) + styles.DiffHunkHeader.Render(header)
	}

	prefix := lineMarker(styles, d, i) + gutterCell(styles, gutters, i)

	if i >= lo && i <= hi {
		st := styles.DiffSelected
		if i == d.Cursor {
			st = styles.DiffCursor
		}
		return prefix + st.Render(ui.PadRight(diff.TruncateWidth(raw, tw), tw))
	}

	text := raw
	if d.Display != nil && i < len(d.Display) {
		text = d.Display[i]
		return prefix + lipgloss.NewStyle().MaxWidth(tw).Render(text) + commentBadge(styles, d, i)
	}
	return prefix + kindStyle(styles, kind).Render(diff.TruncateWidth(text, tw)) + commentBadge(styles, d, i)
}

// renderWrappedLine renders all visual rows of one logical line.
// Wrapped text drops per-token highlighting and falls back to
// kind-level colouring, which keeps row widths exact.
func renderWrappedLine(styles ui.Styles, d DiffData, gutters []string, i, lo, hi int) []string {
	raw := d.Patch.Line(i)
	kind := diff.Classify(raw)
	tw := TextWidth(d.Width, kind, d.LineNumbers)

	if kind == diff.Header {
		header := diff.PrettyHunkHeader(raw, tw)
		return []string{strings.Repeat(" ", markerCols) + styles.DiffHunkHeader.Render(header)}
	}

	chunks := wrap.Chunks(raw, tw)
	st := kindStyle(styles, kind)
	highlighted := i >= lo && i <= hi
	if highlighted {
		st = styles.DiffSelected
		if i == d.Cursor {
			st = styles.DiffCursor
		}
	}

	rows := make([]string, 0, len(chunks))
	for c, chunk := range chunks {
		var prefix string
		if c == 0 {
			prefix = lineMarker(styles, d, i) + gutterCell(styles, gutters, i)
		} else {
			prefix = strings.Repeat(" ", markerCols+GutterWidth(kind, d.LineNumbers))
		}
		text := chunk
		if highlighted {
			text = ui.PadRight(chunk, tw)
		}
		row := prefix + st.Render(text)
		if c == 0 && !highlighted {
			row += commentBadge(styles, d, i)
		}
		rows = append(rows, row)
	}
	return rows
}

func kindStyle(styles ui.Styles, kind diff.LineKind) lipgloss.Style {
	switch kind {
	case diff.Added:
		return styles.DiffAdded
	case diff.Removed:
		return styles.DiffRemoved
	default:
		return styles.DiffContext
	}
}

// lineMarker renders the two-column left strip: pending comment,
// existing comment, or blank.
func lineMarker(styles ui.Styles, d DiffData, i int) string {
	switch {
	case d.PendingLines[i]:
		return styles.PendingMarker.Render("✎ ")
	case d.CommentCounts[i] > 0:
		return styles.CommentBadge.Render("● ")
	default:
		return strings.Repeat(" ", markerCols)
	}
}

// commentBadge renders the trailing comment-count badge for lines that
// carry existing review comments.
func commentBadge(styles ui.Styles, d DiffData, i int) string {
	n := d.CommentCounts[i]
	if n == 0 {
		return ""
	}
	return styles.CommentBadge.Render(fmt.Sprintf(" [%d]", n))
}

func gutterCell(styles ui.Styles, gutters []string, i int) string {
	if gutters == nil || i >= len(gutters) {
		return ""
	}
	return styles.DiffLineNum.Render(gutters[i])
}

// buildGutters replays the patch's hunk headers to produce the
// line-number gutter text for every logical line: one-sided for
// added/removed lines, two-sided for context lines, empty for headers.
// Returns nil when line numbers are off.
func buildGutters(p *diff.Patch, lineNumbers bool) []string {
	if !lineNumbers {
		return nil
	}
	gutters := make([]string, p.LineCount())
	oldLine, newLine := 0, 0
	for i, line := range p.Lines() {
		switch diff.Classify(line) {
		case diff.Header:
			if o, n, ok := diff.ParseHunkHeader(line); ok {
				oldLine, newLine = o, n
			}
			gutters[i] = ""
		case diff.Removed:
			gutters[i] = fmt.Sprintf("%4d │", oldLine)
			oldLine++
		case diff.Added:
			gutters[i] = fmt.Sprintf("%4d │", newLine)
			newLine++
		default:
			gutters[i] = fmt.Sprintf("%4d %4d │", oldLine, newLine)
			oldLine++
			newLine++
		}
	}
	return gutters
}
