package app

import (
	"fmt"
	"time"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/markdown"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/media"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/components"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/views"
	"github.com/charmbracelet/lipgloss"
)

// View renders the entire UI. Pure: no I/O, no state mutation that the
// next frame depends on.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	switch m.mode {
	case ModeHelp:
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", m.keys.HelpSections(), m.width, m.height)
	case ModeCommentView:
		return m.viewCommentThread()
	case ModeCommentInput:
		if m.commentTarget == targetConversation {
			return m.viewCommentInput("Conversation comment", false)
		}
		return m.viewCommentInput("New comment", true)
	case ModeReviewBodyInput:
		return m.viewCommentInput("Review body", false)
	case ModeReviewSubmit:
		return views.RenderReviewSubmit(m.styles, views.ReviewSubmitData{
			Cursor:       m.eventCursor,
			PendingCount: len(m.pending),
			Width:        m.width,
			Height:       m.height,
		})
	case ModeQuitConfirm:
		return views.RenderQuitConfirm(m.styles, len(m.pending), m.quitChoice, m.width, m.height)
	case ModeMediaViewer:
		return m.viewMedia()
	}

	bar, _ := components.RenderPanelBar(m.styles, m.panelTabs(), m.width)
	content := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), m.viewDiffPanel())
	statusBar := components.RenderStatusBar(m.styles, m.statusBarData(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, bar, content, statusBar)
}

func (m Model) panelTabs() []components.PanelTab {
	tabs := make([]components.PanelTab, len(common.AllPanels))
	for i, p := range common.AllPanels {
		tabs[i] = components.PanelTab{
			Name:     p.Name,
			Shortcut: p.Shortcut,
			Active:   p.ID == m.focus,
		}
	}
	return tabs
}

func (m Model) statusBarData() components.StatusBarData {
	data := components.StatusBarData{
		Repo:         m.svc.Owner() + "/" + m.svc.Repo(),
		Number:       m.svc.Number(),
		PendingCount: len(m.pending),
		FromSnapshot: m.fromSnapshot,
	}
	if m.snapshot != nil && len(m.snapshot.HeadSHA) >= 7 {
		data.HeadSHA = m.snapshot.HeadSHA[:7]
	}
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	} else if m.submitting {
		data.Message = "submitting review…"
	}
	return data
}

// ── Panels ───────────────────────────────────────────────────────

func (m Model) viewSidebar() string {
	w := m.sidebarWidth()

	desc := m.panelBox("Description", m.viewDescription(), w, m.descPanelHeight(), common.PanelDescription)
	commits := m.panelBox("Commits", m.viewCommits(), w, m.commitsPanelHeight(), common.PanelCommits)
	files := m.panelBox("Files", m.viewFiles(), w, m.filesPanelHeight(), common.PanelFiles)

	return lipgloss.JoinVertical(lipgloss.Left, desc, commits, files)
}

func (m Model) panelBox(title, content string, w, h int, id common.PanelID) string {
	style := m.styles.Panel
	if id == m.focus {
		style = m.styles.PanelFocused
	}
	titled := m.styles.PanelTitle.Render(title) + "\n" + content
	return style.Width(w - 2).Height(h - 2).Render(titled)
}

func (m Model) viewDescription() string {
	if m.snapshot == nil {
		return m.styles.Muted.Render("Loading…")
	}
	state := m.snapshot.PRState
	if state == "" {
		state = "open"
	}
	return views.RenderDescription(m.styles, views.DescriptionData{
		Number: m.svc.Number(),
		Title:  m.snapshot.PRTitle,
		Author: m.snapshot.PRAuthor,
		State:  state,
		Lines:  m.descLines,
		Scroll: m.descScroll,
		Width:  m.sidebarWidth() - 4,
		Height: m.descPanelHeight() - 3,
	})
}

func (m Model) viewCommits() string {
	if m.snapshot == nil {
		return m.styles.Muted.Render("Loading…")
	}
	return views.RenderCommits(m.styles, views.CommitsData{
		Commits:  m.snapshot.Commits,
		Cursor:   m.commitCursor,
		Selected: m.reviewCommit,
		Scroll:   m.commitScroll,
		Width:    m.sidebarWidth() - 4,
		Height:   m.commitsPanelHeight() - 3,
	})
}

func (m Model) viewFiles() string {
	pendingCounts := make(map[string]int)
	for _, p := range m.pending {
		pendingCounts[p.FilePath]++
	}
	commentCounts := make(map[string]int)
	for _, c := range m.comments {
		commentCounts[c.Path]++
	}
	return views.RenderFiles(m.styles, views.FilesData{
		Files:         m.files(),
		Cursor:        m.fileCursor,
		Scroll:        m.fileScroll,
		PendingCounts: pendingCounts,
		CommentCounts: commentCounts,
		Width:         m.sidebarWidth() - 4,
		Height:        m.filesPanelHeight() - 3,
	})
}

func (m Model) viewDiffPanel() string {
	w := m.width - m.sidebarWidth()
	title := "Diff"
	if f := m.currentFile(); f != nil {
		title = fmt.Sprintf("%c %s", f.StatusChar(), ui.TruncatePath(f.Filename, w-20))
	}
	if m.wrapOn {
		title += "  [wrap]"
	}

	// The offset table must exist before rendering wraps.
	m.ensureOffsets()

	content := views.RenderDiff(m.styles, views.DiffData{
		Patch:         m.patch,
		Display:       m.display,
		LineMap:       m.lineMap,
		Offsets:       m.offsets,
		Wrap:          m.wrapOn,
		LineNumbers:   m.lineNumbers,
		Cursor:        m.cursor,
		Selecting:     m.mode == ModeLineSelect,
		Anchor:        m.anchor,
		LineMode:      m.focus == common.PanelDiff,
		Scroll:        m.scroll,
		CommentCounts: m.commentCounts(),
		PendingLines:  m.pendingLines(),
		Width:         m.diffPanelWidth(),
		Height:        m.diffPanelHeight(),
	})

	return m.panelBox(title, content, w, m.contentHeight(), common.PanelDiff)
}

// ── Overlays ─────────────────────────────────────────────────────

func (m Model) viewCommentThread() string {
	thread := m.commentsAtCursor()
	dark := m.cfg.UI.Theme != "light"

	display := make([]views.CommentDisplay, 0, len(thread))
	for _, c := range thread {
		body, _ := media.Preprocess(c.Body)
		display = append(display, views.CommentDisplay{
			Author:    c.User.Login,
			CreatedAt: c.CreatedAt,
			Lines:     markdown.RenderLines(body, 64, dark),
		})
	}

	resolved := false
	if t := m.threadForComments(thread); t != nil {
		resolved = t.IsResolved
	}

	path, line := "", 0
	if f := m.currentFile(); f != nil {
		path = f.Filename
	}
	if info := m.lineMap.At(m.cursor); info != nil {
		line = info.FileLine
	}

	return views.RenderCommentView(m.styles, views.CommentViewData{
		FilePath: path,
		Line:     line,
		Resolved: resolved,
		Comments: display,
		Scroll:   m.threadScroll,
		Width:    m.width,
		Height:   m.height,
	})
}

func (m Model) viewCommentInput(title string, withLocation bool) string {
	data := views.CommentInputData{
		Title:  title,
		Editor: m.commentEditor,
		Width:  m.width,
		Height: m.height,
	}
	if title == "Review body" {
		data.Editor = m.bodyEditor
	}
	if withLocation {
		if f := m.currentFile(); f != nil {
			lo, hi := m.anchor, m.cursor
			if lo > hi {
				lo, hi = hi, lo
			}
			data.FilePath = f.Filename
			if s := m.lineMap.At(lo); s != nil {
				data.StartLine = s.FileLine
			}
			if e := m.lineMap.At(hi); e != nil {
				data.EndLine = e.FileLine
			}
		}
	}
	return views.RenderCommentInput(m.styles, data)
}

func (m Model) viewMedia() string {
	items := make([]views.MediaItem, 0, len(m.mediaRefs))
	for _, ref := range m.mediaRefs {
		status := "downloading…"
		switch {
		case ref.Type == media.Video:
			status = "video"
		default:
			if img, ok := m.mediaImages[ref.URL]; ok {
				b := img.Bounds()
				status = fmt.Sprintf("%d×%d", b.Dx(), b.Dy())
			}
		}
		items = append(items, views.MediaItem{Ref: ref, Status: status})
	}
	return views.RenderMediaViewer(m.styles, views.MediaViewerData{
		Items:  items,
		Cursor: m.mediaCursor,
		Scroll: m.mediaScroll,
		Width:  m.width,
		Height: m.height,
	})
}
