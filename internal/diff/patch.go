// Package diff models a single file's unified-diff patch: line
// classification, the patch-line → file-line map used for review
// comment addressing, and hunk-aware cursor navigation.
package diff

import "strings"

// LineKind classifies one line of patch text.
type LineKind int

const (
	// Header is a hunk header line ("@@ -a,l +b,l @@ ...").
	Header LineKind = iota
	// Added is a line prefixed with '+'.
	Added
	// Removed is a line prefixed with '-'.
	Removed
	// Context is any other line (unchanged in both versions).
	Context
)

// Classify returns the kind of a raw patch line.
func Classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "@@"):
		return Header
	case strings.HasPrefix(line, "+"):
		return Added
	case strings.HasPrefix(line, "-"):
		return Removed
	default:
		return Context
	}
}

// Patch is one file's unified-diff text split into logical lines.
// It is immutable: a new Patch is built whenever the selected
// (commit, file) pair changes.
type Patch struct {
	lines []string
}

// New splits patch text into logical lines. An empty string yields a
// patch with zero lines (files with no textual diff, e.g. binaries).
func New(text string) *Patch {
	if text == "" {
		return &Patch{}
	}
	text = strings.TrimSuffix(text, "\n")
	return &Patch{lines: strings.Split(text, "\n")}
}

// LineCount returns the number of logical lines.
func (p *Patch) LineCount() int { return len(p.lines) }

// Lines returns the underlying logical lines. Callers must not mutate
// the returned slice.
func (p *Patch) Lines() []string { return p.lines }

// Line returns logical line i, or "" when i is out of range.
func (p *Patch) Line(i int) string {
	if i < 0 || i >= len(p.lines) {
		return ""
	}
	return p.lines[i]
}

// IsHeader reports whether logical line i is a hunk header.
// Out-of-range indices are not headers.
func (p *Patch) IsHeader(i int) bool {
	if i < 0 || i >= len(p.lines) {
		return false
	}
	return Classify(p.lines[i]) == Header
}

// IsChange reports whether logical line i is an added or removed line.
func (p *Patch) IsChange(i int) bool {
	if i < 0 || i >= len(p.lines) {
		return false
	}
	k := Classify(p.lines[i])
	return k == Added || k == Removed
}

// SameHunk reports whether lines a and b belong to the same hunk,
// i.e. no hunk header lies between them. Order of a and b does not
// matter.
func (p *Patch) SameHunk(a, b int) bool {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo + 1; i <= hi; i++ {
		if p.IsHeader(i) {
			return false
		}
	}
	return true
}
