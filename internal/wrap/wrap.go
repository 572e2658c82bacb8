// Package wrap computes how logical text lines map onto terminal rows
// when soft wrapping is enabled. Wrapping is character level with no
// trimming: wide runes occupy two columns, zero-width runes none, and
// an empty line still occupies one row.
package wrap

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

// Height returns the number of terminal rows line occupies at the
// given width. A non-positive width disables wrapping, so every line
// is one row.
func Height(line string, width int) int {
	if line == "" || width <= 0 {
		return 1
	}
	rows, col := 1, 0
	for _, r := range line {
		cw := runewidth.RuneWidth(r)
		if col+cw > width {
			rows++
			col = 0
		}
		col += cw
	}
	return rows
}

// Chunks splits line into the row substrings Height counts, using the
// same column arithmetic. len(Chunks(l, w)) == Height(l, w) for every
// line and width.
func Chunks(line string, width int) []string {
	if line == "" || width <= 0 {
		return []string{line}
	}
	var chunks []string
	var row []rune
	col := 0
	for _, r := range line {
		cw := runewidth.RuneWidth(r)
		if col+cw > width {
			chunks = append(chunks, string(row))
			row = row[:0]
			col = 0
		}
		row = append(row, r)
		col += cw
	}
	chunks = append(chunks, string(row))
	return chunks
}

// Table caches the starting visual row of every logical line. It holds
// lineCount+1 entries; the final entry is the total visual height, so
// Offset(lineCount) returns the full height the way a one-past-the-end
// scroll target needs it.
type Table []int

// BuildTable computes the offset table for n logical lines, asking
// height for the row count of each. Heights below one are treated as
// one so a zero-width view cannot produce a degenerate table.
func BuildTable(n int, height func(i int) int) Table {
	t := make(Table, 0, n+1)
	visual := 0
	t = append(t, 0)
	for i := 0; i < n; i++ {
		h := height(i)
		if h < 1 {
			h = 1
		}
		visual += h
		t = append(t, visual)
	}
	return t
}

// LineCount returns the number of logical lines the table covers.
func (t Table) LineCount() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// Total returns the total visual height of all lines.
func (t Table) Total() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1]
}

// Offset returns the visual row at which logical line starts. Indexes
// past the end clamp to the total height, matching the render path's
// use of Offset(lineCount) for the scroll bound.
func (t Table) Offset(logical int) int {
	if len(t) == 0 {
		return logical
	}
	if logical < 0 {
		return 0
	}
	if logical >= len(t) {
		return t[len(t)-1]
	}
	return t[logical]
}

// RowHeight returns how many visual rows logical line i occupies.
func (t Table) RowHeight(i int) int {
	if i < 0 || i+1 >= len(t) {
		return 1
	}
	return t[i+1] - t[i]
}

// ToLogical returns the logical line containing the given visual row,
// the largest i with Offset(i) <= visual. Rows past the end clamp to
// the last line.
func (t Table) ToLogical(visual int) int {
	n := t.LineCount()
	if n == 0 {
		return visual
	}
	// First index whose offset exceeds visual, minus one.
	i := sort.SearchInts(t, visual+1) - 1
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
