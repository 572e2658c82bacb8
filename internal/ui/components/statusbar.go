package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Repo         string // "owner/repo"
	Number       int    // PR number
	HeadSHA      string // short head SHA of the reviewed commit
	PendingCount int    // queued review comments
	FromSnapshot bool   // data came from the on-disk snapshot, not the network
	Message      string // transient info/error message
	IsError      bool
}

// RenderStatusBar renders the bottom status bar with clear visual sections
// separated by dim vertical bars.
//
// Wide (>= 60):   owner/repo #42  │  abc1234  │  ✎ 3 pending      message
// Medium (40-59): owner/repo #42  │  ✎ 3 pending
// Narrow (< 40):  #42  │  ✎ 3 pending
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	prStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	var prSection string
	if width >= 40 && data.Repo != "" {
		prSection = " " + prStyle.Render(fmt.Sprintf("%s #%d", data.Repo, data.Number))
	} else {
		prSection = " " + prStyle.Render(fmt.Sprintf("#%d", data.Number))
	}

	var shaSection string
	if width >= 60 && data.HeadSHA != "" {
		shaSection = sep + lipgloss.NewStyle().Foreground(t.CommitHash).Render(data.HeadSHA)
	}

	var pendingSection string
	switch {
	case data.PendingCount > 0:
		pendingSection = sep + styles.PendingMarker.Render(fmt.Sprintf("✎ %d pending", data.PendingCount))
	case data.FromSnapshot:
		pendingSection = sep + lipgloss.NewStyle().Foreground(t.TextSubtle).Render("snapshot")
	default:
		pendingSection = sep + lipgloss.NewStyle().Foreground(t.Success).Render("✓ live")
	}

	left := prSection + shaSection + pendingSection

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).Render(content)
}
