package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

// displayCol is the cursor's terminal column ignoring wrap.
func displayCol(e *TextEditor) int {
	w := 0
	for _, r := range e.lines[e.row][:e.col] {
		w += runewidth.RuneWidth(r)
	}
	return w
}

func typeString(e *TextEditor, s string) {
	for _, r := range s {
		e.InsertRune(r)
	}
}

func TestNewEditor(t *testing.T) {
	e := New()
	assert.Len(t, e.lines, 1)
	assert.True(t, e.IsEmpty())
	assert.Equal(t, "", e.Text())
	assert.Equal(t, 0, e.row)
	assert.Equal(t, 0, displayCol(e))
}

func TestInsertRune(t *testing.T) {
	e := New()
	typeString(e, "abc")
	assert.Equal(t, "abc", e.Text())
	assert.False(t, e.IsEmpty())
}

func TestInsertNewline(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.InsertNewline()
	e.InsertRune('c')
	assert.Equal(t, "ab\nc", e.Text())
	assert.Len(t, e.lines, 2)
}

func TestInsertNewlineMidLine(t *testing.T) {
	e := New()
	typeString(e, "abc")
	e.MoveLeft()
	e.InsertNewline()
	assert.Equal(t, "ab\nc", e.Text())
}

func TestBackspace(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.Backspace()
	assert.Equal(t, "a", e.Text())
}

func TestBackspaceOnEmpty(t *testing.T) {
	e := New()
	e.Backspace()
	assert.Equal(t, "", e.Text())
}

func TestBackspaceAtLineStartJoinsLines(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.MoveHome()
	e.Backspace()
	assert.Equal(t, "ab", e.Text())
	assert.Len(t, e.lines, 1)
	assert.Equal(t, 0, e.row)
}

func TestDelete(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.MoveHome()
	e.Delete()
	assert.Equal(t, "b", e.Text())
}

func TestDeleteAtLineEndJoinsLines(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.MoveUp()
	e.MoveEnd()
	e.Delete()
	assert.Equal(t, "ab", e.Text())
	assert.Len(t, e.lines, 1)
}

func TestDeleteAtEndOfLastLine(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.Delete()
	assert.Equal(t, "a", e.Text())
}

func TestMoveLeftRight(t *testing.T) {
	e := New()
	typeString(e, "ab")
	assert.Equal(t, 2, displayCol(e))
	e.MoveLeft()
	assert.Equal(t, 1, displayCol(e))
	e.MoveRight()
	assert.Equal(t, 2, displayCol(e))
}

func TestMoveLeftAcrossLines(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.MoveHome()
	e.MoveLeft()
	assert.Equal(t, 0, e.row)
	assert.Equal(t, 1, displayCol(e))
}

func TestMoveRightAcrossLines(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.MoveUp()
	e.MoveEnd()
	e.MoveRight()
	assert.Equal(t, 1, e.row)
	assert.Equal(t, 0, displayCol(e))
}

func TestMoveUpDown(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.InsertNewline()
	e.InsertRune('c')
	assert.Equal(t, 2, e.row)
	e.MoveUp()
	assert.Equal(t, 1, e.row)
	e.MoveUp()
	assert.Equal(t, 0, e.row)
	e.MoveUp()
	assert.Equal(t, 0, e.row, "stays at the top")
	e.MoveDown()
	assert.Equal(t, 1, e.row)
}

func TestMoveUpClampsCol(t *testing.T) {
	e := New()
	typeString(e, "ab")
	e.InsertNewline()
	typeString(e, "cdefg")
	assert.Equal(t, 5, displayCol(e))
	e.MoveUp()
	assert.Equal(t, 2, displayCol(e))
}

func TestMoveHomeEnd(t *testing.T) {
	e := New()
	typeString(e, "abc")
	e.MoveHome()
	assert.Equal(t, 0, displayCol(e))
	e.MoveEnd()
	assert.Equal(t, 3, displayCol(e))
}

func TestMultibyteInsert(t *testing.T) {
	e := New()
	typeString(e, "あい")
	assert.Equal(t, "あい", e.Text())
	assert.Equal(t, 4, displayCol(e), "wide runes are two columns each")
}

func TestMultibyteBackspace(t *testing.T) {
	e := New()
	typeString(e, "あい")
	e.Backspace()
	assert.Equal(t, "あ", e.Text())
	assert.Equal(t, 2, displayCol(e))
}

func TestMultibyteMoveLeftRight(t *testing.T) {
	e := New()
	typeString(e, "あい")
	e.MoveLeft()
	assert.Equal(t, 2, displayCol(e))
	e.MoveLeft()
	assert.Equal(t, 0, displayCol(e))
	e.MoveRight()
	assert.Equal(t, 2, displayCol(e))
}

func TestMultibyteClampOnLineMove(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('あ')
	assert.Equal(t, 3, e.col)
	assert.Equal(t, 2, displayCol(e))
	e.MoveUp()
	assert.Equal(t, 1, e.col)
	assert.Equal(t, 1, displayCol(e))
	// Moving back down lands mid-rune at byte 1; the clamp pulls the
	// cursor back to the rune boundary at 0.
	e.MoveDown()
	assert.Equal(t, 0, displayCol(e))
}

func TestMixedASCIIAndMultibyte(t *testing.T) {
	e := New()
	typeString(e, "Hi！")
	assert.Equal(t, "Hi！", e.Text())
	assert.Equal(t, 4, displayCol(e))
	e.Backspace()
	assert.Equal(t, "Hi", e.Text())
	assert.Equal(t, 2, displayCol(e))
}

func TestClear(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.Clear()
	assert.True(t, e.IsEmpty())
	assert.Len(t, e.lines, 1)
	assert.Equal(t, 0, e.row)
	assert.Equal(t, 0, displayCol(e))
}

func TestTextMultiline(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.InsertNewline()
	e.InsertRune('c')
	assert.Equal(t, "a\nb\nc", e.Text())
}

func TestEnsureVisibleScrollsDown(t *testing.T) {
	e := New()
	for i := 0; i < 10; i++ {
		e.InsertRune(rune('a' + i))
		e.InsertNewline()
	}
	assert.Equal(t, 10, e.row)
	e.EnsureVisible(5)
	assert.Equal(t, 6, e.scroll)
}

func TestEnsureVisibleScrollsUp(t *testing.T) {
	e := New()
	for i := 0; i < 10; i++ {
		e.InsertRune(rune('a' + i))
		e.InsertNewline()
	}
	e.EnsureVisible(5)
	assert.Equal(t, 6, e.scroll)
	e.row = 0
	e.col = 0
	e.EnsureVisible(5)
	assert.Equal(t, 0, e.scroll)
}

func TestLinesFromScroll(t *testing.T) {
	e := New()
	e.InsertRune('a')
	e.InsertNewline()
	e.InsertRune('b')
	e.InsertNewline()
	e.InsertRune('c')
	lines := e.LinesFromScroll()
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestCursorVisualPositionNoWrap(t *testing.T) {
	e := New()
	typeString(e, "ab")
	col, row := e.CursorVisualPosition()
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, row)
}

func TestCursorVisualPositionWithWrap(t *testing.T) {
	e := New()
	e.SetDisplayWidth(5)
	typeString(e, "abcdefghij")
	// Ten columns at width five: the cursor sits at the start of the
	// third visual row.
	col, row := e.CursorVisualPosition()
	assert.Equal(t, 0, col)
	assert.Equal(t, 2, row)
}

func TestEnsureVisibleWithWrap(t *testing.T) {
	e := New()
	e.SetDisplayWidth(5)
	typeString(e, "abcdefghijklmnopqrst")
	e.InsertNewline()
	typeString(e, "xyz")
	// The first line wraps to four visual rows; the cursor row starts
	// at row four, inside a five-row viewport.
	e.EnsureVisible(5)
	assert.Equal(t, 0, e.scroll)

	e.EnsureVisible(3)
	assert.Greater(t, e.scroll, 0)
}

func TestScrollbarState(t *testing.T) {
	e := New()
	for i := 0; i < 10; i++ {
		e.InsertRune(rune('a' + i))
		e.InsertNewline()
	}
	total, pos, ok := e.ScrollbarState(5)
	assert.True(t, ok)
	assert.Equal(t, 11, total)
	assert.Equal(t, 0, pos)

	e.EnsureVisible(5)
	total, pos, ok = e.ScrollbarState(5)
	assert.True(t, ok)
	assert.Equal(t, 11, total)
	assert.Greater(t, pos, 0)

	_, _, ok = New().ScrollbarState(5)
	assert.False(t, ok, "content that fits needs no scrollbar")
}

func TestHandleKey(t *testing.T) {
	e := New()
	assert.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")}))
	assert.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}))
	assert.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("there")}))
	assert.Equal(t, "hi there", e.Text())

	assert.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, "hi ther", e.Text())

	assert.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, "hi ther\n", e.Text())

	assert.False(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}), "mode keys are not consumed")
}
