package wrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeight(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  int
	}{
		{"empty line", "", 10, 1},
		{"zero width disables wrapping", strings.Repeat("x", 50), 0, 1},
		{"fits exactly", "abcde", 5, 1},
		{"one over", "abcdef", 5, 2},
		{"double wrap", strings.Repeat("a", 11), 5, 3},
		{"wide runes count two columns", "ああああ", 4, 2},
		{"wide rune does not split", "aああ", 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Height(tt.line, tt.width))
		})
	}
}

func TestBuildTable(t *testing.T) {
	lines := []string{"short", "this line wraps twice over", "", "x"}
	table := BuildTable(len(lines), func(i int) int {
		return Height(lines[i], 10)
	})

	// "this line wraps twice over" is 26 columns, 3 rows at width 10.
	assert.Equal(t, Table{0, 1, 4, 5, 6}, table)
	assert.Equal(t, 4, table.LineCount())
	assert.Equal(t, 6, table.Total())
}

func TestTableMonotonicWithHeights(t *testing.T) {
	lines := []string{"", "aaaaaaaaaaaa", "あいうえお", "mid", strings.Repeat("z", 25)}
	table := BuildTable(len(lines), func(i int) int {
		return Height(lines[i], 8)
	})

	for i := 0; i < table.LineCount(); i++ {
		assert.Less(t, table.Offset(i), table.Offset(i+1), "offsets strictly increase")
		assert.Equal(t, Height(lines[i], 8), table.RowHeight(i),
			"offset delta equals the line's height")
	}
}

func TestTableOffsetClamps(t *testing.T) {
	table := Table{0, 1, 3, 4, 7}

	assert.Equal(t, 0, table.Offset(0))
	assert.Equal(t, 3, table.Offset(2))
	assert.Equal(t, 7, table.Offset(4), "one past the end returns the total")
	assert.Equal(t, 7, table.Offset(99))
	assert.Equal(t, 0, table.Offset(-1))
}

func TestTableToLogical(t *testing.T) {
	// line 0 → row 0, line 1 → rows 1-2, line 2 → row 3, line 3 → rows 4-6.
	table := Table{0, 1, 3, 4, 7}

	assert.Equal(t, 0, table.ToLogical(0))
	assert.Equal(t, 1, table.ToLogical(1))
	assert.Equal(t, 1, table.ToLogical(2))
	assert.Equal(t, 2, table.ToLogical(3))
	assert.Equal(t, 3, table.ToLogical(4))
	assert.Equal(t, 3, table.ToLogical(6))
	assert.Equal(t, 3, table.ToLogical(99), "past the end clamps to the last line")
}

func TestTableRoundTrip(t *testing.T) {
	lines := []string{"alpha", strings.Repeat("b", 30), "", "gamma", strings.Repeat("d", 17)}
	table := BuildTable(len(lines), func(i int) int {
		return Height(lines[i], 7)
	})

	for i := 0; i < table.LineCount(); i++ {
		assert.Equal(t, i, table.ToLogical(table.Offset(i)))
	}
	for row := 0; row < table.Total(); row++ {
		l := table.ToLogical(row)
		assert.GreaterOrEqual(t, row, table.Offset(l))
		assert.Less(t, row, table.Offset(l+1))
	}
}

func TestEmptyTable(t *testing.T) {
	table := BuildTable(0, func(int) int { return 1 })
	assert.Equal(t, 0, table.LineCount())
	assert.Equal(t, 0, table.Total())
}

func TestChunks(t *testing.T) {
	assert.Equal(t, []string{"abc"}, Chunks("abc", 5))
	assert.Equal(t, []string{"abcde", "fghij"}, Chunks("abcdefghij", 5))
	assert.Equal(t, []string{""}, Chunks("", 5))
	assert.Equal(t, []string{"abc"}, Chunks("abc", 0), "non-positive width disables wrapping")

	// Wide rune that does not fit in the remaining column wraps whole.
	assert.Equal(t, []string{"aああ"}, Chunks("aああ", 5))
	assert.Equal(t, []string{"aあ", "あ"}, Chunks("aああ", 4))
}

func TestChunksMatchesHeight(t *testing.T) {
	lines := []string{"", "short", strings.Repeat("x", 23), "aあいbうc", strings.Repeat("あ", 9)}
	for _, line := range lines {
		for _, w := range []int{1, 3, 7, 80} {
			assert.Len(t, Chunks(line, w), Height(line, w), "line %q width %d", line, w)
		}
	}
}
