package diff

import (
	"strconv"
	"strings"
)

// Side says which version of the file a diff line addresses.
type Side int

const (
	// Left is the old version (removed lines).
	Left Side = iota
	// Right is the new version (added and context lines).
	Right
)

// String returns the GitHub review API spelling of the side.
func (s Side) String() string {
	if s == Left {
		return "LEFT"
	}
	return "RIGHT"
}

// LineInfo is the target-file position of one patch line.
type LineInfo struct {
	FileLine int
	Side     Side
}

// LineMap maps each logical patch line to its target-file line, or nil
// for hunk header lines, which cannot carry review comments.
type LineMap []*LineInfo

// At returns the entry for logical line i, or nil when i is out of
// range or addresses a hunk header.
func (m LineMap) At(i int) *LineInfo {
	if i < 0 || i >= len(m) {
		return nil
	}
	return m[i]
}

// BuildLineMap replays the patch's hunk headers and per-line counters
// to compute the file line for every patch line. Removed lines advance
// the old-side counter, added lines the new-side counter, and context
// lines both (context entries address the new side). A header that
// fails to parse leaves the counters unchanged, so its hunk's entries
// carry over the previous counters rather than failing the whole map.
func BuildLineMap(p *Patch) LineMap {
	m := make(LineMap, 0, p.LineCount())
	oldLine, newLine := 0, 0

	for _, line := range p.Lines() {
		switch Classify(line) {
		case Header:
			if o, n, ok := ParseHunkHeader(line); ok {
				oldLine, newLine = o, n
			}
			m = append(m, nil)
		case Removed:
			m = append(m, &LineInfo{FileLine: oldLine, Side: Left})
			oldLine++
		case Added:
			m = append(m, &LineInfo{FileLine: newLine, Side: Right})
			newLine++
		default:
			m = append(m, &LineInfo{FileLine: newLine, Side: Right})
			oldLine++
			newLine++
		}
	}
	return m
}

// ParseHunkHeader extracts the old and new starting line numbers from
// a header of the form "@@ -old_start[,old_len] +new_start[,new_len] @@".
// Lengths, when present, are ignored here; a missing length defaults
// to 1 per the unified-diff format.
func ParseHunkHeader(line string) (oldStart, newStart int, ok bool) {
	rest, found := strings.CutPrefix(line, "@@ ")
	if !found {
		return 0, 0, false
	}
	end := strings.Index(rest, " @@")
	if end < 0 {
		return 0, 0, false
	}

	parts := strings.Fields(rest[:end])
	if len(parts) < 2 {
		return 0, 0, false
	}
	oldPart, found := strings.CutPrefix(parts[0], "-")
	if !found {
		return 0, 0, false
	}
	newPart, found := strings.CutPrefix(parts[1], "+")
	if !found {
		return 0, 0, false
	}

	oldStart, err := strconv.Atoi(strings.SplitN(oldPart, ",", 2)[0])
	if err != nil {
		return 0, 0, false
	}
	newStart, err = strconv.Atoi(strings.SplitN(newPart, ",", 2)[0])
	if err != nil {
		return 0, 0, false
	}
	return oldStart, newStart, true
}
