// Package editor implements the multi-line text editor used by the
// comment and review-body input overlays. The cursor column is a byte
// offset into the current line and is kept on a UTF-8 rune boundary at
// all times.
package editor

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/wrap"
)

// VisibleHeight is the number of editor rows shown by the comment and
// review-body overlays.
const VisibleHeight = 5

// TextEditor is a small multi-line editor with soft wrapping.
type TextEditor struct {
	lines  []string
	row    int
	col    int // byte offset into lines[row]
	scroll int
	// last display width set by the render path, 0 disables wrapping
	displayWidth int
}

// New returns an editor holding a single empty line.
func New() *TextEditor {
	return &TextEditor{lines: []string{""}}
}

// Clear resets the editor to its initial state.
func (e *TextEditor) Clear() {
	e.lines = []string{""}
	e.row = 0
	e.col = 0
	e.scroll = 0
}

// IsEmpty reports whether every line is empty.
func (e *TextEditor) IsEmpty() bool {
	for _, l := range e.lines {
		if l != "" {
			return false
		}
	}
	return true
}

// Text returns the buffer joined with newlines.
func (e *TextEditor) Text() string {
	return strings.Join(e.lines, "\n")
}

// SetDisplayWidth records the width wrapping is computed against. The
// render path calls this every frame before measuring the cursor.
func (e *TextEditor) SetDisplayWidth(width int) {
	e.displayWidth = width
}

// LinesFromScroll returns all lines from the scroll offset onward; the
// render path wraps and clips them to the viewport.
func (e *TextEditor) LinesFromScroll() []string {
	start := e.scroll
	if start > len(e.lines) {
		start = len(e.lines)
	}
	return e.lines[start:]
}

// InsertRune inserts r at the cursor and advances past it.
func (e *TextEditor) InsertRune(r rune) {
	line := e.lines[e.row]
	e.lines[e.row] = line[:e.col] + string(r) + line[e.col:]
	e.col += utf8.RuneLen(r)
}

// InsertNewline splits the current line at the cursor.
func (e *TextEditor) InsertNewline() {
	line := e.lines[e.row]
	tail := line[e.col:]
	e.lines[e.row] = line[:e.col]
	e.row++
	e.lines = append(e.lines[:e.row], append([]string{tail}, e.lines[e.row:]...)...)
	e.col = 0
}

// Backspace deletes the rune before the cursor, joining with the
// previous line when the cursor sits at a line start.
func (e *TextEditor) Backspace() {
	if e.col > 0 {
		line := e.lines[e.row]
		prev := prevBoundary(line, e.col)
		e.lines[e.row] = line[:prev] + line[e.col:]
		e.col = prev
		return
	}
	if e.row > 0 {
		removed := e.lines[e.row]
		e.lines = append(e.lines[:e.row], e.lines[e.row+1:]...)
		e.row--
		e.col = len(e.lines[e.row])
		e.lines[e.row] += removed
	}
}

// Delete removes the rune under the cursor, joining with the next line
// when the cursor sits at a line end.
func (e *TextEditor) Delete() {
	line := e.lines[e.row]
	if e.col < len(line) {
		_, size := utf8.DecodeRuneInString(line[e.col:])
		e.lines[e.row] = line[:e.col] + line[e.col+size:]
		return
	}
	if e.row+1 < len(e.lines) {
		next := e.lines[e.row+1]
		e.lines = append(e.lines[:e.row+1], e.lines[e.row+2:]...)
		e.lines[e.row] += next
	}
}

// MoveLeft moves the cursor one rune left, wrapping to the previous
// line end at a line start.
func (e *TextEditor) MoveLeft() {
	if e.col > 0 {
		e.col = prevBoundary(e.lines[e.row], e.col)
		return
	}
	if e.row > 0 {
		e.row--
		e.col = len(e.lines[e.row])
	}
}

// MoveRight moves the cursor one rune right, wrapping to the next line
// start at a line end.
func (e *TextEditor) MoveRight() {
	line := e.lines[e.row]
	if e.col < len(line) {
		_, size := utf8.DecodeRuneInString(line[e.col:])
		e.col += size
		return
	}
	if e.row+1 < len(e.lines) {
		e.row++
		e.col = 0
	}
}

// MoveUp moves the cursor up one line, clamping the column.
func (e *TextEditor) MoveUp() {
	if e.row > 0 {
		e.row--
		e.clampCursorCol()
	}
}

// MoveDown moves the cursor down one line, clamping the column.
func (e *TextEditor) MoveDown() {
	if e.row+1 < len(e.lines) {
		e.row++
		e.clampCursorCol()
	}
}

// MoveHome moves the cursor to the start of the line.
func (e *TextEditor) MoveHome() {
	e.col = 0
}

// MoveEnd moves the cursor to the end of the line.
func (e *TextEditor) MoveEnd() {
	e.col = len(e.lines[e.row])
}

// EnsureVisible adjusts the scroll offset so the cursor's visual row
// falls inside a viewport of visibleHeight rows, accounting for
// wrapped lines. Scrolling advances one logical line at a time.
func (e *TextEditor) EnsureVisible(visibleHeight int) {
	if visibleHeight <= 0 {
		return
	}
	if e.row < e.scroll {
		e.scroll = e.row
	}
	for e.scroll < e.row {
		_, row := e.CursorVisualPosition()
		if row < visibleHeight {
			break
		}
		e.scroll++
	}
}

// CursorVisualPosition returns the cursor's column and row on screen,
// relative to the scroll offset and accounting for wrapping. A cursor
// that reaches the display width sits at the start of the next visual
// row.
func (e *TextEditor) CursorVisualPosition() (col, row int) {
	w := e.displayWidth
	for i := e.scroll; i < e.row; i++ {
		row += wrap.Height(e.lines[i], w)
	}
	line := e.lines[e.row]
	for pos := 0; pos < e.col; {
		r, size := utf8.DecodeRuneInString(line[pos:])
		if size == 0 {
			break
		}
		cw := runewidth.RuneWidth(r)
		if w > 0 && col+cw > w {
			row++
			col = 0
		}
		col += cw
		pos += size
	}
	if w > 0 && col >= w {
		row++
		col = 0
	}
	return col, row
}

// ScrollbarState returns the total visual height and the scroll
// position for a scrollbar, or ok=false when the content fits inside
// visibleHeight and no scrollbar is needed.
func (e *TextEditor) ScrollbarState(visibleHeight int) (total, pos int, ok bool) {
	w := e.displayWidth
	for i := range e.lines {
		total += wrap.Height(e.lines[i], w)
	}
	if total <= visibleHeight {
		return 0, 0, false
	}
	for i := 0; i < e.scroll && i < len(e.lines); i++ {
		pos += wrap.Height(e.lines[i], w)
	}
	return total, pos, true
}

// HandleKey applies a generic editing key and reports whether it was
// handled. Mode-specific keys (Esc, Ctrl+S) must be intercepted by the
// caller first.
func (e *TextEditor) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		e.InsertNewline()
	case tea.KeyBackspace:
		e.Backspace()
	case tea.KeyDelete:
		e.Delete()
	case tea.KeyLeft:
		e.MoveLeft()
	case tea.KeyRight:
		e.MoveRight()
	case tea.KeyUp:
		e.MoveUp()
	case tea.KeyDown:
		e.MoveDown()
	case tea.KeyHome:
		e.MoveHome()
	case tea.KeyEnd:
		e.MoveEnd()
	case tea.KeySpace:
		e.InsertRune(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			e.InsertRune(r)
		}
	default:
		return false
	}
	return true
}

// clampCursorCol pulls the column back onto the current line and onto
// a rune boundary after a vertical move.
func (e *TextEditor) clampCursorCol() {
	line := e.lines[e.row]
	if e.col > len(line) {
		e.col = len(line)
		return
	}
	for e.col > 0 && e.col < len(line) && !utf8.RuneStart(line[e.col]) {
		e.col--
	}
}

// prevBoundary returns the byte offset of the rune immediately before
// col in line. col must itself be on a rune boundary.
func prevBoundary(line string, col int) int {
	prev := col
	for prev > 0 {
		prev--
		if utf8.RuneStart(line[prev]) {
			break
		}
	}
	return prev
}
