package app

import (
	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/highlight"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/views"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/wrap"
)

// rebuildDiff replaces the diff panel state for the currently selected
// (commit, file) pair: patch, line map, highlighted text, cursor, and
// scroll. Called whenever that selection changes.
func (m *Model) rebuildDiff() {
	m.offsets = nil
	m.cursor = 0
	m.scroll = 0
	m.anchor = 0

	f := m.currentFile()
	if f == nil || f.Patch == nil {
		m.patch = diff.New("")
		m.lineMap = diff.BuildLineMap(m.patch)
		m.display = nil
		return
	}

	m.patch = diff.New(*f.Patch)
	m.lineMap = diff.BuildLineMap(m.patch)
	m.display = m.highlightPatch(*f.Patch, f.Filename, f.Status)
	m.cursor = diff.SkipHeaderForward(m.patch, 0, m.patch.LineCount())
}

// highlightPatch produces display lines for the patch: the external
// differ when available, local chroma colouring otherwise. A nil
// return means render plain.
func (m *Model) highlightPatch(patch, filename, status string) []string {
	if highlight.HasDelta() {
		if lines, ok := highlight.DeltaPatch(patch, filename, status); ok {
			return lines
		}
	}
	return highlight.ChromaPatch(patch, filename)
}

// ensureOffsets builds the wrap offset table if wrapping is on and the
// table was invalidated. Width per line depends on the line's gutter.
func (m *Model) ensureOffsets() {
	if !m.wrapOn || m.offsets != nil || m.patch == nil {
		return
	}
	w := m.diffPanelWidth()
	lines := m.patch.Lines()
	m.offsets = wrap.BuildTable(len(lines), func(i int) int {
		kind := diff.Classify(lines[i])
		if kind == diff.Header {
			return 1
		}
		return wrap.Height(lines[i], views.TextWidth(w, kind, m.lineNumbers))
	})
}

// invalidateOffsets drops the offset table so the next frame rebuilds
// it. Called on width changes and gutter toggles.
func (m *Model) invalidateOffsets() {
	m.offsets = nil
}

// commentCounts maps logical patch lines of the current file to the
// number of existing remote comments addressing them.
func (m *Model) commentCounts() map[int]int {
	f := m.currentFile()
	if f == nil || m.lineMap == nil {
		return nil
	}

	// Reverse the line map: (file line, side) -> logical line.
	type key struct {
		line int
		side diff.Side
	}
	reverse := make(map[key]int, len(m.lineMap))
	for i := 0; i < len(m.lineMap); i++ {
		if info := m.lineMap.At(i); info != nil {
			reverse[key{info.FileLine, info.Side}] = i
		}
	}

	counts := make(map[int]int)
	for _, c := range m.comments {
		if c.Path != f.Filename || c.Line == nil {
			continue
		}
		side := diff.Right
		if c.Side != nil && *c.Side == "LEFT" {
			side = diff.Left
		}
		if logical, ok := reverse[key{*c.Line, side}]; ok {
			counts[logical]++
		}
	}
	return counts
}

// pendingLines marks the logical lines of the current file covered by
// queued comments.
func (m *Model) pendingLines() map[int]bool {
	f := m.currentFile()
	if f == nil {
		return nil
	}
	sha := m.reviewSHA()
	marked := make(map[int]bool)
	for _, p := range m.pending {
		if p.FilePath != f.Filename || p.CommitSHA != sha {
			continue
		}
		for i := p.StartLine; i <= p.EndLine; i++ {
			marked[i] = true
		}
	}
	return marked
}

// commentsAtCursor returns the remote comment thread(s) addressing the
// cursor line, in root-then-replies order.
func (m *Model) commentsAtCursor() []github.ReviewComment {
	f := m.currentFile()
	info := m.lineMap.At(m.cursor)
	if f == nil || info == nil {
		return nil
	}
	var thread []github.ReviewComment
	// Roots first.
	for _, c := range m.comments {
		if c.Path == f.Filename && c.Line != nil && *c.Line == info.FileLine && c.InReplyToID == nil {
			if c.Side == nil || sideOf(*c.Side) == info.Side {
				thread = append(thread, c)
			}
		}
	}
	// Then replies to any collected root.
	for _, c := range m.comments {
		if c.InReplyToID == nil {
			continue
		}
		for _, root := range thread {
			if *c.InReplyToID == root.ID {
				thread = append(thread, c)
				break
			}
		}
	}
	return thread
}

// threadForComments finds the GraphQL review thread owning the given
// thread's root comment.
func (m *Model) threadForComments(thread []github.ReviewComment) *github.ReviewThread {
	root, ok := github.RootCommentID(thread)
	if !ok {
		return nil
	}
	for i := range m.threads {
		if m.threads[i].RootCommentID == root {
			return &m.threads[i]
		}
	}
	return nil
}

func sideOf(s string) diff.Side {
	if s == "LEFT" {
		return diff.Left
	}
	return diff.Right
}
