package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "plain", stripANSI("plain"))
	assert.Equal(t, "+new", stripANSI("\x1b[32m+new\x1b[0m"))
	assert.Equal(t, "@@ -1 +1 @@", stripANSI("\x1b[1;34m@@ -1 +1 @@\x1b[m"))
}

func TestRemoveFirstSpace(t *testing.T) {
	assert.Equal(t, "code", removeFirstSpace(" code"))
	assert.Equal(t, "\x1b[32mcode\x1b[0m", removeFirstSpace("\x1b[32m code\x1b[0m"))
	assert.Equal(t, "+already", removeFirstSpace("+already"), "non-space prefix is untouched")
	assert.Equal(t, "", removeFirstSpace(""))
}

func TestDiffHeader(t *testing.T) {
	h := diffHeader("main.go")
	assert.Equal(t, "diff --git a/main.go b/main.go\n--- a/main.go\n+++ b/main.go\n", h)
}

func TestChromaLineNoLexer(t *testing.T) {
	assert.Equal(t, "some text", ChromaLine("some text", "notes.unknownext"))
	assert.Equal(t, "", ChromaLine("", "main.go"))
	assert.Equal(t, "x", ChromaLine("x", ""))
}

func TestChromaLineHighlightsGo(t *testing.T) {
	out := ChromaLine(`func main() {}`, "main.go")
	assert.Contains(t, out, "\x1b[", "Go code gets ANSI colors")
	assert.Equal(t, `func main() {}`, stripANSI(out), "content survives highlighting")
}

func TestChromaPatchPreservesStructure(t *testing.T) {
	patch := "@@ -1,2 +1,2 @@\n-old := 1\n+new := 2\n ctx := 3"
	out := ChromaPatch(patch, "main.go")

	require.Len(t, out, 4)
	assert.Equal(t, "@@ -1,2 +1,2 @@", out[0], "hunk headers pass through unhighlighted")
	assert.True(t, strings.HasPrefix(stripANSI(out[1]), "-"))
	assert.True(t, strings.HasPrefix(stripANSI(out[2]), "+"))
	assert.True(t, strings.HasPrefix(stripANSI(out[3]), " "))
	assert.Equal(t, "-old := 1", stripANSI(out[1]))
}

func TestDeltaPatchAlignment(t *testing.T) {
	if !HasDelta() {
		t.Skip("delta not installed")
	}
	patch := "@@ -1,3 +1,3 @@\n context\n-old\n+new"
	lines, ok := DeltaPatch(patch, "main.go", "modified")
	require.True(t, ok)
	assert.Len(t, lines, 4, "output lines align with patch lines")
}

func TestDeltaPatchWholeFileStripsPadding(t *testing.T) {
	if !HasDelta() {
		t.Skip("delta not installed")
	}
	patch := "@@ -0,0 +1,3 @@\n+line1\n+line2\n+line3"
	lines, ok := DeltaPatch(patch, "main.go", "added")
	require.True(t, ok)
	require.Len(t, lines, 4)
	for i, l := range lines[1:] {
		assert.False(t, strings.HasPrefix(stripANSI(l), " "), "line %d keeps its width", i+1)
	}
}
