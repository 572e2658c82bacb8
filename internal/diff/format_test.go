package diff

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHunkHeader(t *testing.T) {
	got := PrettyHunkHeader("@@ -10,5 +12,7 @@", 40)
	assert.Equal(t, 40, runewidth.StringWidth(got))
	assert.Contains(t, got, "L10-14 → L12-18")
}

func TestPrettyHunkHeaderWithContext(t *testing.T) {
	got := PrettyHunkHeader("@@ -1,3 +1,3 @@ func main() {", 60)
	assert.Equal(t, 60, runewidth.StringWidth(got))
	assert.Contains(t, got, "L1-3 → L1-3")
	assert.Contains(t, got, "func main() {")
}

func TestPrettyHunkHeaderSingleLineRanges(t *testing.T) {
	got := PrettyHunkHeader("@@ -5 +7 @@", 30)
	assert.Contains(t, got, "L5 → L7")
}

func TestPrettyHunkHeaderMalformed(t *testing.T) {
	got := PrettyHunkHeader("@@ not a header", 20)
	assert.Equal(t, 20, runewidth.StringWidth(got))
}

func TestPrettyHunkHeaderTruncates(t *testing.T) {
	got := PrettyHunkHeader("@@ -100,50 +200,60 @@ some very long surrounding context text", 24)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 24)
}

func TestTruncateWidth(t *testing.T) {
	assert.Equal(t, "short", TruncateWidth("short", 10))
	assert.Equal(t, "hell…", TruncateWidth("hello world", 5))
	assert.Equal(t, "", TruncateWidth("hello", 0))
}

func TestTruncateWidthWideRunes(t *testing.T) {
	// "あい" is 4 columns wide; truncating to 3 leaves room for one
	// wide rune plus the ellipsis.
	assert.Equal(t, "あ…", TruncateWidth("あい", 3))
	assert.Equal(t, "あい", TruncateWidth("あい", 4))
}
