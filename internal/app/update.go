package app

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/editor"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/markdown"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/media"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/views"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update processes one message to completion before the next render.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.invalidateOffsets()
		m.rebuildDescription()
		m.commentEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
		m.bodyEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case common.PRLoadedMsg:
		return m.handlePRLoaded(msg)

	case common.FilesLoadedMsg:
		if m.snapshot == nil {
			return m, nil
		}
		m.snapshot.FilesMap[msg.SHA] = msg.Files
		m.persistSnapshot()
		if msg.SHA == m.reviewSHA() {
			m.clampFileCursor()
			m.rebuildDiff()
		}
		return m, nil

	case common.CommentsLoadedMsg:
		m.comments = msg.Comments
		m.issueComments = msg.IssueComments
		m.reviews = msg.Reviews
		m.threads = msg.Threads
		m.rebuildDescription()
		return m, nil

	case common.ConversationPostedMsg:
		if msg.Err != nil {
			m.setStatus("comment failed: "+msg.Err.Error(), true)
			return m, nil
		}
		m.setStatus("comment posted", false)
		return m, m.loadComments()

	case common.ReviewSubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.quitAfterSubmit = false
			m.setStatus("review failed: "+msg.Err.Error(), true)
			return m, nil
		}
		m.pending = nil
		if m.quitAfterSubmit {
			return m, tea.Quit
		}
		m.setStatus("review submitted", false)
		return m, m.loadComments()

	case common.ThreadToggledMsg:
		if msg.Err != nil {
			m.setStatus("thread toggle failed: "+msg.Err.Error(), true)
			return m, nil
		}
		for i := range m.threads {
			if m.threads[i].NodeID == msg.NodeID {
				m.threads[i].IsResolved = msg.Resolved
			}
		}
		if msg.Resolved {
			m.setStatus("thread resolved", false)
		} else {
			m.setStatus("thread unresolved", false)
		}
		return m, nil

	case common.MediaLoadedMsg:
		// Stale generations already landed in the URL-keyed cache;
		// only the latest updates the viewer.
		if msg.Generation == m.mediaGen {
			for u, img := range msg.Images {
				m.mediaImages[u] = img
			}
		}
		return m, nil

	case common.RefreshMsg:
		m.setStatus("refreshing…", false)
		return m, tea.Batch(m.loadPR(true), m.loadComments())

	case common.SnapshotChangedMsg:
		// Another process rewrote the snapshot; pick it up from disk.
		return m, m.loadPR(false)

	case common.ErrMsg:
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case common.InfoMsg:
		m.setStatus(msg.Text, false)
		return m, nil
	}

	return m, nil
}

func (m Model) handlePRLoaded(msg common.PRLoadedMsg) (tea.Model, tea.Cmd) {
	// Remember the selection so a reload (refresh, snapshot rewrite)
	// does not yank the user back to the head commit.
	var prevReview, prevCursor, prevFile string
	if m.snapshot != nil {
		prevReview = m.reviewSHA()
		if c := m.commitCursor; c >= 0 && c < len(m.snapshot.Commits) {
			prevCursor = m.snapshot.Commits[c].SHA
		}
		if f := m.currentFile(); f != nil {
			prevFile = f.Filename
		}
	}

	m.snapshot = msg.Snapshot
	m.fromSnapshot = msg.FromSnapshot
	if n := len(m.snapshot.Commits); n > 0 {
		m.reviewCommit = n - 1
		m.commitCursor = n - 1
		if m.initialCommit != "" {
			for i, c := range m.snapshot.Commits {
				if strings.HasPrefix(c.SHA, m.initialCommit) {
					m.reviewCommit = i
					m.commitCursor = i
					break
				}
			}
			m.initialCommit = ""
		} else {
			if i, ok := commitIndex(m.snapshot.Commits, prevReview); ok {
				m.reviewCommit = i
			}
			if i, ok := commitIndex(m.snapshot.Commits, prevCursor); ok {
				m.commitCursor = i
			}
		}
	}
	m.rebuildDescription()
	m.clampFileCursor()
	if prevFile != "" {
		for i, f := range m.files() {
			if f.Filename == prevFile {
				m.fileCursor = i
				break
			}
		}
	}
	m.rebuildDiff()

	var cmds []tea.Cmd
	if sha := m.reviewSHA(); sha != "" {
		if _, ok := m.snapshot.FilesMap[sha]; !ok {
			cmds = append(cmds, m.loadFiles(sha))
		}
	}
	return m, tea.Batch(cmds...)
}

// rebuildDescription re-renders the PR body for the description panel
// width, replacing media references with placeholders. Submitted
// reviews and conversation comments follow the body.
func (m *Model) rebuildDescription() {
	if m.snapshot == nil || m.width == 0 {
		return
	}
	body, _ := media.Preprocess(m.snapshot.PRBody)
	dark := m.cfg.UI.Theme != "light"
	w := m.sidebarWidth() - 4
	m.descLines = markdown.RenderLines(body, w, dark)
	m.descLines = append(m.descLines, m.conversationLines(w, dark)...)
	m.descScroll = 0
}

func (m *Model) conversationLines(width int, dark bool) []string {
	if len(m.reviews) == 0 && len(m.issueComments) == 0 {
		return nil
	}
	lines := []string{"", m.styles.Title.Render("Conversation"), ""}
	for _, r := range m.reviews {
		lines = append(lines,
			m.styles.Author.Render("@"+r.User.Login)+" "+m.styles.Muted.Render(strings.ToLower(r.State)))
		if r.Body != nil && *r.Body != "" {
			body, _ := media.Preprocess(*r.Body)
			lines = append(lines, markdown.RenderLines(body, width, dark)...)
		}
	}
	for _, c := range m.issueComments {
		body, _ := media.Preprocess(c.Body)
		lines = append(lines,
			m.styles.Author.Render("@"+c.User.Login)+" "+m.styles.Muted.Render(c.CreatedAt))
		lines = append(lines, markdown.RenderLines(body, width, dark)...)
	}
	return lines
}

func (m *Model) persistSnapshot() {
	if m.snapshot == nil {
		return
	}
	err := github.WriteSnapshot(m.cfg.Cache.Dir, m.svc.Owner(), m.svc.Repo(), m.svc.Number(), m.snapshot)
	if err != nil {
		m.log.Warn().Err(err).Msg("snapshot write failed")
	}
}

func (m *Model) clampFileCursor() {
	files := m.files()
	if m.fileCursor >= len(files) {
		m.fileCursor = len(files) - 1
	}
	if m.fileCursor < 0 {
		m.fileCursor = 0
	}
}

// ── Key dispatch ─────────────────────────────────────────────────

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeCommentInput:
		return m.handleCommentInputKey(msg)
	case ModeReviewBodyInput:
		return m.handleReviewBodyKey(msg)
	case ModeCommentView:
		return m.handleCommentViewKey(msg)
	case ModeReviewSubmit:
		return m.handleReviewSubmitKey(msg)
	case ModeQuitConfirm:
		return m.handleQuitConfirmKey(msg)
	case ModeHelp:
		return m.handleHelpKey(msg)
	case ModeMediaViewer:
		return m.handleMediaViewerKey(msg)
	case ModeLineSelect:
		return m.handleLineSelectKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleCommentInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.confirmComment()
	case key.Matches(msg, m.keys.Back):
		m.commentEditor.Clear()
		m.mode = ModeNormal
		return m, nil
	}
	if m.commentEditor.HandleKey(msg) {
		m.commentEditor.EnsureVisible(editor.VisibleHeight)
	}
	return m, nil
}

// confirmComment validates the selection against the line map and
// queues a pending comment, or posts a conversation comment when the
// editor was opened from the description panel. Validation failures
// keep the editor open.
func (m Model) confirmComment() (tea.Model, tea.Cmd) {
	if m.commentEditor.IsEmpty() {
		m.setStatus("comment is empty", true)
		return m, nil
	}
	if m.commentTarget == targetConversation {
		body := m.commentEditor.Text()
		m.commentEditor.Clear()
		m.mode = ModeNormal
		m.setStatus("posting comment…", false)
		return m, m.postConversation(body)
	}

	f := m.currentFile()
	if f == nil {
		m.setStatus("no file selected", true)
		return m, nil
	}

	lo, hi := m.anchor, m.cursor
	if lo > hi {
		lo, hi = hi, lo
	}
	p := github.PendingComment{
		FilePath:  f.Filename,
		StartLine: lo,
		EndLine:   hi,
		Body:      m.commentEditor.Text(),
		CommitSHA: m.reviewSHA(),
	}
	if _, err := github.BuildDraftComment(p, m.files()); err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	m.pending = append(m.pending, p)
	m.commentEditor.Clear()
	m.mode = ModeNormal
	m.setStatus(fmt.Sprintf("comment queued (%d pending)", len(m.pending)), false)
	return m, nil
}

func (m Model) handleReviewBodyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.submitting = true
		m.mode = ModeNormal
		body := m.bodyEditor.Text()
		m.bodyEditor.Clear()
		m.setStatus("submitting review…", false)
		// The command runs after the next render pass.
		return m, m.submitReview(github.Events[m.eventCursor], body)
	case key.Matches(msg, m.keys.Back):
		// Keep the typed body and the event choice.
		m.mode = ModeReviewSubmit
		return m, nil
	}
	if m.bodyEditor.HandleKey(msg) {
		m.bodyEditor.EnsureVisible(editor.VisibleHeight)
	}
	return m, nil
}

func (m Model) handleCommentViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.threadScroll++
	case key.Matches(msg, m.keys.Up):
		if m.threadScroll > 0 {
			m.threadScroll--
		}
	case key.Matches(msg, m.keys.Resolve):
		thread := m.threadForComments(m.commentsAtCursor())
		if thread == nil {
			m.setStatus("no thread to resolve", true)
			return m, nil
		}
		return m, m.toggleThread(thread.NodeID, thread.IsResolved)
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleReviewSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.eventCursor = (m.eventCursor + 1) % len(github.Events)
	case key.Matches(msg, m.keys.Up):
		m.eventCursor = (m.eventCursor + len(github.Events) - 1) % len(github.Events)
	case key.Matches(msg, m.keys.Open):
		if github.Events[m.eventCursor] == github.EventComment && len(m.pending) == 0 {
			m.setStatus("queue a comment first, or choose another event", true)
			return m, nil
		}
		m.bodyEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
		m.mode = ModeReviewBodyInput
	case key.Matches(msg, m.keys.Back):
		m.quitAfterSubmit = false
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleQuitConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		// Submit and quit: pick the event first.
		m.quitAfterSubmit = true
		m.mode = ModeReviewSubmit
		return m, nil
	case "n":
		return m, tea.Quit
	case "c", "esc":
		m.mode = ModeNormal
		return m, nil
	case "tab", "right", "l":
		m.quitChoice = (m.quitChoice + 1) % 3
		return m, nil
	case "left", "h":
		m.quitChoice = (m.quitChoice + 2) % 3
		return m, nil
	case "enter":
		switch m.quitChoice {
		case 0:
			m.quitAfterSubmit = true
			m.mode = ModeReviewSubmit
		case 1:
			return m, tea.Quit
		default:
			m.mode = ModeNormal
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMediaViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.mediaCursor < len(m.mediaRefs)-1 {
			m.mediaCursor++
			m.mediaScroll = m.mediaCursor * 2
		}
	case key.Matches(msg, m.keys.Up):
		if m.mediaCursor > 0 {
			m.mediaCursor--
			m.mediaScroll = m.mediaCursor * 2
		}
	case msg.String() == "s":
		return m.saveCurrentMedia()
	case key.Matches(msg, m.keys.Copy):
		if m.mediaCursor < len(m.mediaRefs) {
			url := m.mediaRefs[m.mediaCursor].URL
			if err := clipboard.WriteAll(url); err != nil {
				m.setStatus("clipboard: "+err.Error(), true)
			} else {
				m.setStatus("url copied", false)
			}
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Media), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) saveCurrentMedia() (tea.Model, tea.Cmd) {
	if m.mediaCursor >= len(m.mediaRefs) {
		return m, nil
	}
	ref := m.mediaRefs[m.mediaCursor]
	img, ok := m.mediaImages[ref.URL]
	if !ok {
		m.setStatus("not downloaded yet", true)
		return m, nil
	}
	path, err := media.SaveImage(img, "zpr-*.png")
	if err != nil {
		m.setStatus("save failed: "+err.Error(), true)
		return m, nil
	}
	m.setStatus("saved "+path, false)
	return m, nil
}

func (m Model) handleLineSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveSelectCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelectCursor(-1)
	case key.Matches(msg, m.keys.Comment), key.Matches(msg, m.keys.Open):
		m.commentTarget = targetDiff
		m.mode = ModeCommentInput
		m.commentEditor.Clear()
		m.commentEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
	case key.Matches(msg, m.keys.Copy):
		if text := m.selectedText(); text != "" {
			if err := clipboard.WriteAll(text); err != nil {
				m.setStatus("clipboard: "+err.Error(), true)
			} else {
				m.setStatus("copied", false)
			}
		}
		m.mode = ModeNormal
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Back):
		// Discard the selection without creating a comment.
		m.mode = ModeNormal
	}
	return m, nil
}

// moveSelectCursor extends the selection, refusing moves that would
// cross a hunk header (multi-line comments must stay in one hunk).
func (m *Model) moveSelectCursor(delta int) {
	prev := m.cursor
	m.moveCursor(delta)
	if !m.patch.SameHunk(m.anchor, m.cursor) {
		m.cursor = prev
		m.ensureCursorVisible()
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Two-key sequences: gg, ]c, [c, ]h, [h.
	if m.pendingKey != "" {
		return m.completeSequence(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if len(m.pending) > 0 {
			m.mode = ModeQuitConfirm
			m.quitChoice = 0
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, func() tea.Msg { return common.RefreshMsg{} }

	case key.Matches(msg, m.keys.Submit):
		m.mode = ModeReviewSubmit
		m.eventCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Media):
		return m.openMediaViewer()

	case key.Matches(msg, m.keys.NextPanel):
		m.cyclePanel(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevPanel):
		m.cyclePanel(-1)
		return m, nil
	case key.Matches(msg, m.keys.Panel1):
		return m.focusPanel(common.PanelDescription)
	case key.Matches(msg, m.keys.Panel2):
		return m.focusPanel(common.PanelCommits)
	case key.Matches(msg, m.keys.Panel3):
		return m.focusPanel(common.PanelFiles)
	case key.Matches(msg, m.keys.Panel4):
		return m.focusPanel(common.PanelDiff)
	}

	switch m.focus {
	case common.PanelDescription:
		return m.handleDescriptionKey(msg)
	case common.PanelCommits:
		return m.handleCommitsKey(msg)
	case common.PanelFiles:
		return m.handleFilesKey(msg)
	default:
		return m.handleDiffKey(msg)
	}
}

func (m Model) completeSequence(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lead := m.pendingKey
	m.pendingKey = ""
	if m.focus != common.PanelDiff {
		return m, nil
	}
	switch lead {
	case "g":
		if msg.String() == "g" {
			m.gotoTop()
		}
	case "]", "[":
		forward := lead == "]"
		switch msg.String() {
		case "c":
			m.jumpChange(forward)
		case "h":
			m.jumpHunk(forward)
		}
	}
	return m, nil
}

func (m Model) handleDescriptionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.descPanelHeight() - 5 // header rows
	switch {
	case key.Matches(msg, m.keys.Down):
		m.descScroll++
	case key.Matches(msg, m.keys.Up):
		m.descScroll--
	case key.Matches(msg, m.keys.HalfDown):
		m.descScroll += h / 2
	case key.Matches(msg, m.keys.HalfUp):
		m.descScroll -= h / 2
	case key.Matches(msg, m.keys.Comment):
		m.commentTarget = targetConversation
		m.mode = ModeCommentInput
		m.commentEditor.Clear()
		m.commentEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
		return m, nil
	}
	if m.descScroll < 0 {
		m.descScroll = 0
	}
	return m, nil
}

func (m Model) handleCommitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := 0
	if m.snapshot != nil {
		n = len(m.snapshot.Commits)
	}
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.commitCursor < n-1 {
			m.commitCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.commitCursor > 0 {
			m.commitCursor--
		}
	case key.Matches(msg, m.keys.Open):
		if m.commitCursor == m.reviewCommit || n == 0 {
			return m, nil
		}
		m.reviewCommit = m.commitCursor
		m.fileCursor = 0
		sha := m.reviewSHA()
		if _, ok := m.snapshot.FilesMap[sha]; !ok {
			m.rebuildDiff()
			return m, m.loadFiles(sha)
		}
		m.rebuildDiff()
	}
	m.commitScroll = clampListScroll(m.commitScroll, m.commitCursor, m.commitsPanelHeight()-2)
	return m, nil
}

func (m Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	files := m.files()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.fileCursor < len(files)-1 {
			m.fileCursor++
			m.rebuildDiff()
		}
	case key.Matches(msg, m.keys.Up):
		if m.fileCursor > 0 {
			m.fileCursor--
			m.rebuildDiff()
		}
	case key.Matches(msg, m.keys.Open):
		m.focus = common.PanelDiff
	case key.Matches(msg, m.keys.Copy):
		if f := m.currentFile(); f != nil {
			if err := clipboard.WriteAll(f.Filename); err == nil {
				m.setStatus("path copied", false)
			}
		}
	}
	m.fileScroll = clampListScroll(m.fileScroll, m.fileCursor, m.filesPanelHeight()-2)
	return m, nil
}

func (m Model) handleDiffKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.diffPanelHeight()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.HalfDown):
		m.pageCursor(h / 2)
	case key.Matches(msg, m.keys.HalfUp):
		m.pageCursor(-h / 2)
	case key.Matches(msg, m.keys.PageDown):
		m.pageCursor(h)
	case key.Matches(msg, m.keys.PageUp):
		m.pageCursor(-h)
	case key.Matches(msg, m.keys.Bottom):
		m.gotoBottom()
	case key.Matches(msg, m.keys.Top):
		if msg.String() == "home" {
			m.gotoTop()
		} else {
			m.pendingKey = "g"
		}
	case key.Matches(msg, m.keys.Bracket):
		m.pendingKey = msg.String()

	case key.Matches(msg, m.keys.Select):
		if m.patch != nil && m.patch.LineCount() > 0 && !m.patch.IsHeader(m.cursor) {
			m.anchor = m.cursor
			m.mode = ModeLineSelect
		}
	case key.Matches(msg, m.keys.Comment):
		if m.patch != nil && m.patch.LineCount() > 0 && !m.patch.IsHeader(m.cursor) {
			m.anchor = m.cursor
			m.commentTarget = targetDiff
			m.mode = ModeCommentInput
			m.commentEditor.Clear()
			m.commentEditor.SetDisplayWidth(views.EditorDisplayWidth(m.width))
		}
	case key.Matches(msg, m.keys.Open):
		if len(m.commentsAtCursor()) > 0 {
			m.threadScroll = 0
			m.mode = ModeCommentView
		}
	case key.Matches(msg, m.keys.Resolve):
		thread := m.threadForComments(m.commentsAtCursor())
		if thread == nil {
			m.setStatus("no thread on this line", true)
			return m, nil
		}
		return m, m.toggleThread(thread.NodeID, thread.IsResolved)

	case key.Matches(msg, m.keys.Wrap):
		m.toggleWrap()
	case key.Matches(msg, m.keys.LineNumbers):
		m.toggleLineNumbers()
	case key.Matches(msg, m.keys.Copy):
		if text := m.selectedText(); text != "" {
			if err := clipboard.WriteAll(text); err != nil {
				m.setStatus("clipboard: "+err.Error(), true)
			} else {
				m.setStatus("copied", false)
			}
		}
	}
	return m, nil
}

func (m *Model) cyclePanel(delta int) {
	n := len(common.AllPanels)
	cur := int(m.focus)
	m.focus = common.PanelID((cur + delta + n) % n)
}

func (m Model) focusPanel(p common.PanelID) (tea.Model, tea.Cmd) {
	m.focus = p
	return m, nil
}

// openMediaViewer collects media references from the PR body and all
// comment bodies, then starts a generation-tagged background download.
func (m Model) openMediaViewer() (tea.Model, tea.Cmd) {
	if m.snapshot == nil {
		return m, nil
	}
	_, refs := media.Preprocess(m.snapshot.PRBody)
	for _, c := range m.comments {
		_, more := media.Preprocess(c.Body)
		refs = append(refs, more...)
	}
	for _, c := range m.issueComments {
		_, more := media.Preprocess(c.Body)
		refs = append(refs, more...)
	}
	m.mediaRefs = refs
	m.mediaCursor = 0
	m.mediaScroll = 0
	m.mode = ModeMediaViewer

	var urls []string
	for _, r := range refs {
		if r.Type == media.Image {
			if _, ok := m.mediaCache.Get(r.URL); !ok {
				urls = append(urls, r.URL)
			}
		}
	}
	if len(urls) == 0 {
		return m, nil
	}
	m.mediaGen++
	return m, m.downloadMedia(m.mediaGen, urls)
}

// commitIndex finds a commit by exact SHA.
func commitIndex(commits []github.CommitInfo, sha string) (int, bool) {
	if sha == "" {
		return 0, false
	}
	for i, c := range commits {
		if c.SHA == sha {
			return i, true
		}
	}
	return 0, false
}

// clampListScroll keeps cursor visible in a list viewport of the given
// height.
func clampListScroll(scroll, cursor, height int) int {
	if height < 1 {
		height = 1
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+height {
		return cursor - height + 1
	}
	return scroll
}
