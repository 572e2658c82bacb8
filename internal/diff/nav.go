package diff

// Navigation primitives over a Patch. All functions clamp rather than
// fail: an index that cannot move stays where it is, so a cursor is
// never pushed off the patch.

// SkipHeaderForward advances line past any hunk header lines, stopping
// at the first non-header line before max. If every line from line to
// max is a header, the original line is returned unchanged.
func SkipHeaderForward(p *Patch, line, max int) int {
	l := line
	for l < max && p.IsHeader(l) {
		l++
	}
	if l >= max {
		return line
	}
	return l
}

// SkipHeaderBackward retreats line past any hunk header lines. If the
// walk reaches line 0 and it is still a header (consecutive headers at
// the top of the patch), it re-skips forward instead so the result is
// never a header when any non-header line exists.
func SkipHeaderBackward(p *Patch, line, max int) int {
	l := line
	for l > 0 && p.IsHeader(l) {
		l--
	}
	if p.IsHeader(l) {
		return SkipHeaderForward(p, l, max)
	}
	return l
}

// NextChange returns the first line of the next contiguous block of
// added/removed lines strictly after the change block under cursor.
// The second result is false when no such block exists.
func NextChange(p *Patch, cursor int) (int, bool) {
	n := p.LineCount()
	i := cursor
	for i < n && p.IsChange(i) {
		i++
	}
	for i < n && !p.IsChange(i) {
		i++
	}
	if i < n {
		return i, true
	}
	return cursor, false
}

// PrevChange returns the first line of the previous contiguous block
// of added/removed lines before cursor. The second result is false
// when no earlier change block exists.
func PrevChange(p *Patch, cursor int) (int, bool) {
	if cursor == 0 {
		return cursor, false
	}
	i := cursor - 1
	for i > 0 && !p.IsChange(i) {
		i--
	}
	if !p.IsChange(i) {
		return cursor, false
	}
	for i > 0 && p.IsChange(i-1) {
		i--
	}
	return i, true
}

// NextHunk returns the first non-header line of the next hunk after
// cursor, or false when the cursor is already in the last hunk.
func NextHunk(p *Patch, cursor int) (int, bool) {
	n := p.LineCount()
	for i := cursor + 1; i < n; i++ {
		if p.IsHeader(i) {
			return SkipHeaderForward(p, i, n), true
		}
	}
	return cursor, false
}

// PrevHunk returns the first non-header line of the previous hunk
// before cursor. A candidate hunk whose first non-header line is not
// strictly before cursor is rejected, so sitting on a hunk's first
// line jumps to the hunk before it rather than staying put.
func PrevHunk(p *Patch, cursor int) (int, bool) {
	n := p.LineCount()
	for i := cursor - 1; i >= 0; i-- {
		if !p.IsHeader(i) {
			continue
		}
		target := SkipHeaderForward(p, i, n)
		if target >= cursor {
			continue
		}
		return target, true
	}
	return cursor, false
}
