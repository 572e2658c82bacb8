package app

import (
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
)

// ── Layout geometry ──────────────────────────────────────────────

// contentHeight is the rows between the panel bar and the status bar.
func (m *Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// sidebarWidth is the width of the left column holding the
// description, commit, and file panels.
func (m *Model) sidebarWidth() int {
	w := m.width / 3
	if w < 28 {
		w = 28
	}
	if w > 44 {
		w = 44
	}
	if w > m.width-20 {
		w = m.width / 2
	}
	return w
}

// Sidebar panel heights: description gets the largest share.
func (m *Model) descPanelHeight() int    { return m.contentHeight() * 2 / 5 }
func (m *Model) commitsPanelHeight() int { return m.contentHeight() / 4 }
func (m *Model) filesPanelHeight() int {
	return m.contentHeight() - m.descPanelHeight() - m.commitsPanelHeight()
}

// diffPanelWidth is the inner text width of the diff panel (panel
// border and padding subtracted).
func (m *Model) diffPanelWidth() int {
	w := m.width - m.sidebarWidth() - 4
	if w < 10 {
		w = 10
	}
	return w
}

// diffPanelHeight is the inner row count of the diff panel.
func (m *Model) diffPanelHeight() int {
	h := m.contentHeight() - 2
	if h < 1 {
		h = 1
	}
	return h
}

// ── Diff cursor movement ─────────────────────────────────────────

// moveCursor moves the diff cursor by delta logical lines, skipping
// hunk headers in the direction of travel.
func (m *Model) moveCursor(delta int) {
	if m.patch == nil || m.patch.LineCount() == 0 {
		return
	}
	n := m.patch.LineCount()
	target := m.cursor + delta
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}
	if delta >= 0 {
		target = diff.SkipHeaderForward(m.patch, target, n)
	} else {
		target = diff.SkipHeaderBackward(m.patch, target, n)
	}
	m.cursor = target
	m.ensureCursorVisible()
}

// ensureCursorVisible adjusts the scroll offset so the cursor's row(s)
// are inside the diff viewport.
func (m *Model) ensureCursorVisible() {
	h := m.diffPanelHeight()
	if m.wrapOn {
		m.ensureOffsets()
		if m.offsets == nil {
			return
		}
		top := m.offsets.Offset(m.cursor)
		bottom := m.offsets.Offset(m.cursor+1) - 1
		if top < m.scroll {
			m.scroll = top
		} else if bottom >= m.scroll+h {
			m.scroll = bottom - h + 1
		}
		return
	}
	if m.cursor < m.scroll {
		m.scroll = m.cursor
	} else if m.cursor >= m.scroll+h {
		m.scroll = m.cursor - h + 1
	}
}

// pageCursor moves the cursor by the given number of viewport rows:
// logical lines directly when wrap is off, visual rows converted
// through the offset table when it is on.
func (m *Model) pageCursor(rows int) {
	if m.patch == nil || m.patch.LineCount() == 0 {
		return
	}
	if !m.wrapOn {
		m.moveCursor(rows)
		return
	}
	m.ensureOffsets()
	if m.offsets == nil {
		return
	}
	visual := m.offsets.Offset(m.cursor) + rows
	if visual < 0 {
		visual = 0
	}
	target := m.offsets.ToLogical(visual)
	if rows >= 0 {
		target = diff.SkipHeaderForward(m.patch, target, m.patch.LineCount())
	} else {
		target = diff.SkipHeaderBackward(m.patch, target, m.patch.LineCount())
	}
	m.cursor = target
	m.ensureCursorVisible()
}

// gotoTop moves to the first addressable line.
func (m *Model) gotoTop() {
	if m.patch == nil {
		return
	}
	m.cursor = diff.SkipHeaderForward(m.patch, 0, m.patch.LineCount())
	m.scroll = 0
}

// gotoBottom moves to the last addressable line.
func (m *Model) gotoBottom() {
	if m.patch == nil || m.patch.LineCount() == 0 {
		return
	}
	m.cursor = diff.SkipHeaderBackward(m.patch, m.patch.LineCount()-1, m.patch.LineCount())
	m.ensureCursorVisible()
}

// jumpChange moves to the next or previous contiguous change block.
func (m *Model) jumpChange(forward bool) {
	if m.patch == nil {
		return
	}
	var target int
	var ok bool
	if forward {
		target, ok = diff.NextChange(m.patch, m.cursor)
	} else {
		target, ok = diff.PrevChange(m.patch, m.cursor)
	}
	if ok {
		m.cursor = target
		m.ensureCursorVisible()
	}
}

// jumpHunk moves to the first addressable line of the next or previous
// hunk.
func (m *Model) jumpHunk(forward bool) {
	if m.patch == nil {
		return
	}
	var target int
	var ok bool
	if forward {
		target, ok = diff.NextHunk(m.patch, m.cursor)
	} else {
		target, ok = diff.PrevHunk(m.patch, m.cursor)
	}
	if ok {
		m.cursor = target
		m.ensureCursorVisible()
	}
}

// ── Display toggles ──────────────────────────────────────────────

// toggleWrap flips soft wrap, converting the scroll offset between the
// logical and visual domains with the current offset table. The table
// is rebuilt synchronously when turning wrap on so the conversion
// never uses a stale width.
func (m *Model) toggleWrap() {
	if m.wrapOn {
		if m.offsets != nil {
			m.scroll = m.offsets.ToLogical(m.scroll)
		}
		m.wrapOn = false
		m.offsets = nil
		return
	}
	m.wrapOn = true
	m.offsets = nil
	m.ensureOffsets()
	if m.offsets != nil {
		m.scroll = m.offsets.Offset(m.scroll)
	}
	m.ensureCursorVisible()
}

// toggleLineNumbers flips the gutter; the gutter width changes the
// effective wrap width, so the offset table is invalidated.
func (m *Model) toggleLineNumbers() {
	m.lineNumbers = !m.lineNumbers
	wasVisual := m.wrapOn && m.offsets != nil
	if wasVisual {
		m.scroll = m.offsets.ToLogical(m.scroll)
	}
	m.invalidateOffsets()
	if wasVisual {
		m.ensureOffsets()
		if m.offsets != nil {
			m.scroll = m.offsets.Offset(m.scroll)
		}
	}
	m.ensureCursorVisible()
}

// selectedText returns the raw patch text of the current selection (or
// the cursor line outside LineSelect) for clipboard copy.
func (m *Model) selectedText() string {
	if m.patch == nil || m.patch.LineCount() == 0 {
		return ""
	}
	lo, hi := m.cursor, m.cursor
	if m.mode == ModeLineSelect {
		lo, hi = m.anchor, m.cursor
		if lo > hi {
			lo, hi = hi, lo
		}
	}
	var b strings.Builder
	for i := lo; i <= hi; i++ {
		if i > lo {
			b.WriteByte('\n')
		}
		b.WriteString(m.patch.Line(i))
	}
	return b.String()
}
