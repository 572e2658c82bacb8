package views

import (
	"testing"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
	"github.com/stretchr/testify/assert"
)

func TestTextWidth(t *testing.T) {
	// Marker strip plus scrollbar column, no gutter.
	assert.Equal(t, 77, TextWidth(80, diff.Added, false))
	// One-sided gutter for changed lines.
	assert.Equal(t, 71, TextWidth(80, diff.Added, true))
	// Two-sided gutter for context lines.
	assert.Equal(t, 66, TextWidth(80, diff.Context, true))
	// Headers never get a gutter.
	assert.Equal(t, 77, TextWidth(80, diff.Header, true))
	// Never collapses below one column.
	assert.Equal(t, 1, TextWidth(3, diff.Context, true))
}

func TestBuildGutters(t *testing.T) {
	p := diff.New("@@ -10,3 +20,4 @@\n ctx\n-old\n+new\n+more\n@@ -30,1 +41,1 @@\n-tail")

	g := buildGutters(p, true)
	assert.Equal(t, "", g[0])
	assert.Equal(t, "  10   20 │", g[1]) // context counts both sides
	assert.Equal(t, "  11 │", g[2])      // removed counts the old side
	assert.Equal(t, "  21 │", g[3])      // added counts the new side
	assert.Equal(t, "  22 │", g[4])
	assert.Equal(t, "", g[5]) // second header resets the counters
	assert.Equal(t, "  30 │", g[6])

	assert.Nil(t, buildGutters(p, false))
}

// The gutter width constants drive the wrap arithmetic, so the
// formatted cells must occupy exactly those columns.
func TestGutterWidthMatchesFormat(t *testing.T) {
	p := diff.New("@@ -1,2 +1,2 @@\n ctx\n-old\n+new")
	g := buildGutters(p, true)
	assert.Equal(t, gutterContext, runeWidth(g[1]))
	assert.Equal(t, gutterChange, runeWidth(g[2]))
	assert.Equal(t, gutterChange, runeWidth(g[3]))
}

func runeWidth(s string) int { return len([]rune(s)) }
