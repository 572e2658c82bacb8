package app

import (
	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse resolves pointer events to a panel via the rendered
// layout: clicks focus panels, the wheel scrolls whatever is under the
// pointer. Overlay modes ignore the mouse except for wheel scrolling
// where it makes sense.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeNormal, ModeLineSelect:
	case ModeCommentView:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.threadScroll > 0 {
				m.threadScroll--
			}
		case tea.MouseButtonWheelDown:
			m.threadScroll++
		}
		return m, nil
	default:
		return m, nil
	}

	barH := components.PanelBarRows()

	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || m.mode != ModeNormal {
			return m, nil
		}
		if msg.Y < barH {
			if p, ok := m.panelAt(msg.X); ok {
				return m.focusPanel(p)
			}
			return m, nil
		}
		return m.focusPanel(m.panelUnder(msg.X, msg.Y-barH))

	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 3
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -3
		}
		return m.scrollPanel(m.panelUnder(msg.X, msg.Y-barH), delta)
	}

	return m, nil
}

// panelAt maps a panel bar column to a panel.
func (m Model) panelAt(x int) (common.PanelID, bool) {
	_, zones := components.RenderPanelBar(m.styles, m.panelTabs(), m.width)
	for i, z := range zones {
		if x >= z.Start && x < z.End {
			return common.AllPanels[i].ID, true
		}
	}
	return 0, false
}

// panelUnder maps content-area coordinates to the panel they fall in.
func (m Model) panelUnder(x, y int) common.PanelID {
	if x >= m.sidebarWidth() {
		return common.PanelDiff
	}
	switch {
	case y < m.descPanelHeight():
		return common.PanelDescription
	case y < m.descPanelHeight()+m.commitsPanelHeight():
		return common.PanelCommits
	default:
		return common.PanelFiles
	}
}

// scrollPanel applies a wheel scroll to the given panel. In the diff
// panel the cursor follows the scroll so it stays visible, skipping
// hunk headers.
func (m Model) scrollPanel(p common.PanelID, delta int) (tea.Model, tea.Cmd) {
	switch p {
	case common.PanelDescription:
		m.descScroll += delta
		if m.descScroll < 0 {
			m.descScroll = 0
		}
	case common.PanelCommits:
		m.commitCursor = clampIndex(m.commitCursor+sign(delta), m.commitCount())
		m.commitScroll = clampListScroll(m.commitScroll, m.commitCursor, m.commitsPanelHeight()-2)
	case common.PanelFiles:
		prev := m.fileCursor
		m.fileCursor = clampIndex(m.fileCursor+sign(delta), len(m.files()))
		if m.fileCursor != prev {
			m.rebuildDiff()
		}
		m.fileScroll = clampListScroll(m.fileScroll, m.fileCursor, m.filesPanelHeight()-2)
	case common.PanelDiff:
		if m.mode == ModeLineSelect {
			m.moveSelectCursor(sign(delta))
		} else {
			m.moveCursor(delta)
		}
	}
	return m, nil
}

func (m Model) commitCount() int {
	if m.snapshot == nil {
		return 0
	}
	return len(m.snapshot.Commits)
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	if n > 0 {
		return 1
	}
	return 0
}
