package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PrettyHunkHeader reformats a raw hunk header into a horizontal-rule
// style line padded to width, e.g.
//
//	"@@ -10,5 +12,7 @@ fn main()"  →  "─── L10-14 → L12-18 ─── fn main() ────"
//
// A header that fails to parse renders as a plain rule so malformed
// patches still display.
func PrettyHunkHeader(raw string, width int) string {
	rangeText, context := hunkHeaderParts(raw)

	var b strings.Builder
	b.WriteString("─── ")
	if rangeText != "" {
		b.WriteString(rangeText)
		b.WriteByte(' ')
	}
	if context != "" {
		b.WriteString("─── ")
		b.WriteString(context)
		b.WriteByte(' ')
	}

	content := b.String()
	w := runewidth.StringWidth(content)
	if w >= width {
		return TruncateWidth(content, width-1) + "─"
	}
	return content + strings.Repeat("─", width-w)
}

func hunkHeaderParts(raw string) (rangeText, context string) {
	rest, found := strings.CutPrefix(raw, "@@ ")
	if !found {
		return "", ""
	}
	at := strings.Index(rest, " @@")
	if at < 0 {
		return "", ""
	}
	context = strings.TrimSpace(rest[at+3:])

	parts := strings.Fields(rest[:at])
	if len(parts) < 2 {
		return "", context
	}
	oldRange := strings.TrimPrefix(parts[0], "-")
	newRange := strings.TrimPrefix(parts[1], "+")
	return formatRange(oldRange) + " → " + formatRange(newRange), context
}

// formatRange renders "start,len" as "Lstart" or "Lstart-end".
func formatRange(r string) string {
	fields := strings.SplitN(r, ",", 2)
	start, _ := strconv.Atoi(fields[0])
	length := 1
	if len(fields) == 2 {
		length, _ = strconv.Atoi(fields[1])
	}
	if length <= 1 {
		return fmt.Sprintf("L%d", start)
	}
	return fmt.Sprintf("L%d-%d", start, start+length-1)
}

// TruncateWidth shortens s to at most maxWidth terminal columns,
// appending an ellipsis when truncated. Wide characters count two
// columns.
func TruncateWidth(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 0 {
		return ""
	}
	target := maxWidth - 1 // room for the ellipsis
	var b strings.Builder
	w := 0
	for _, r := range s {
		cw := runewidth.RuneWidth(r)
		if w+cw > target {
			break
		}
		w += cw
		b.WriteRune(r)
	}
	b.WriteRune('…')
	return b.String()
}
