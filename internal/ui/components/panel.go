package components

import (
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// PanelTab describes one entry in the panel bar.
type PanelTab struct {
	Name     string
	Shortcut string
	Active   bool
}

// PanelZone is the clickable column range of a tab on the panel bar row.
type PanelZone struct {
	Start, End int // [Start, End) in screen columns
}

// panelLabel renders the tab label, abbreviated when the bar is narrow.
func panelLabel(tab PanelTab, short bool) string {
	name := tab.Name
	if short {
		runes := []rune(name)
		if len(runes) > 4 {
			name = string(runes[:4])
		}
	}
	if tab.Shortcut != "" {
		return tab.Shortcut + " " + name
	}
	return name
}

// panelBarFits reports whether full labels fit in the given width.
func panelBarFits(tabs []PanelTab, width int) bool {
	w := 1
	for _, tab := range tabs {
		w += lipgloss.Width(panelLabel(tab, false)) + 2
	}
	return w <= width
}

// RenderPanelBar renders the top bar with one tab per panel and an
// underline row accenting the active tab. It also returns the clickable
// zone of each tab, in the same order as tabs, for mouse focus.
func RenderPanelBar(styles ui.Styles, tabs []PanelTab, width int) (string, []PanelZone) {
	t := styles.Theme
	short := !panelBarFits(tabs, width)

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var row strings.Builder
	row.Grow(width + 32)
	row.WriteByte(' ')
	col := 1

	zones := make([]PanelZone, len(tabs))
	activeStart, activeEnd := -1, -1

	for i, tab := range tabs {
		label := panelLabel(tab, short)
		var styled string
		if tab.Active {
			styled = " " + activeStyle.Render(label) + " "
		} else {
			styled = " " + inactiveStyle.Render(label) + " "
		}
		w := lipgloss.Width(styled)
		zones[i] = PanelZone{Start: col, End: col + w}
		if tab.Active {
			activeStart, activeEnd = col, col+w
		}
		row.WriteString(styled)
		col += w
	}

	barRow := lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Background(t.Bg).
		Render(row.String())

	// Underline with a bold accent segment under the active tab.
	borderStyle := lipgloss.NewStyle().Foreground(t.Border)
	accentStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	underline := buildUnderline(width, activeStart, activeEnd, borderStyle, accentStyle, "─", "━")

	// Overlay a right-side hint.
	hintStyle := lipgloss.NewStyle().Foreground(t.TextSubtle).Faint(true)
	hint := hintStyle.Render("tab  ?help")
	hintW := lipgloss.Width(hint)
	if hintW+4 < width {
		hintStart := width - hintW - 1
		var b strings.Builder
		b.WriteString(buildUnderline(hintStart, activeStart, activeEnd, borderStyle, accentStyle, "─", "━"))
		b.WriteByte(' ')
		b.WriteString(hint)
		underline = b.String()
	}

	bar := lipgloss.JoinVertical(lipgloss.Left,
		barRow,
		lipgloss.NewStyle().Width(width).Render(underline),
	)
	return bar, zones
}

// PanelBarRows returns the number of screen rows the panel bar occupies.
func PanelBarRows() int { return 2 }

// buildUnderline builds a width-wide underline string with a bold accent
// segment between activeStart..activeEnd and thin segments elsewhere.
func buildUnderline(width, activeStart, activeEnd int, borderSt, accentSt lipgloss.Style, thin, bold string) string {
	if activeStart < 0 || activeEnd < 0 {
		return borderSt.Render(strings.Repeat(thin, width))
	}
	// Clamp to width.
	if activeEnd > width {
		activeEnd = width
	}
	if activeStart > width {
		activeStart = width
	}

	var b strings.Builder
	b.Grow(width * 4)
	if activeStart > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, activeStart)))
	}
	seg := activeEnd - activeStart
	if seg > 0 {
		b.WriteString(accentSt.Render(strings.Repeat(bold, seg)))
	}
	if rem := width - activeEnd; rem > 0 {
		b.WriteString(borderSt.Render(strings.Repeat(thin, rem)))
	}
	return b.String()
}
