package app

import (
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/config"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/editor"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService satisfies github.Service without touching the network.
type fakeService struct {
	submitted *github.ReviewRequest
	posted    string
}

func (f *fakeService) Owner() string { return "octo" }
func (f *fakeService) Repo() string  { return "demo" }
func (f *fakeService) Number() int   { return 7 }

func (f *fakeService) PullRequest() (*github.PullRequest, error)       { return nil, nil }
func (f *fakeService) Commits() ([]github.CommitInfo, error)           { return nil, nil }
func (f *fakeService) CommitFiles(string) ([]github.DiffFile, error)   { return nil, nil }
func (f *fakeService) ReviewComments() ([]github.ReviewComment, error) { return nil, nil }
func (f *fakeService) IssueComments() ([]github.IssueComment, error)   { return nil, nil }
func (f *fakeService) Reviews() ([]github.ReviewSummary, error)        { return nil, nil }
func (f *fakeService) ReviewThreads() ([]github.ReviewThread, error)   { return nil, nil }

func (f *fakeService) SubmitReview(req *github.ReviewRequest) error {
	f.submitted = req
	return nil
}
func (f *fakeService) PostIssueComment(body string) (*github.IssueComment, error) {
	f.posted = body
	return &github.IssueComment{ID: 1, Body: body}, nil
}
func (f *fakeService) ResolveThread(string) (bool, error)                    { return true, nil }
func (f *fakeService) UnresolveThread(string) (bool, error)                  { return false, nil }

const testPatch = "@@ -1,3 +1,4 @@\n ctx\n-old\n+new\n+more\n@@ -10,2 +11,2 @@\n-tail\n+tails"

func newTestModel(t *testing.T) Model {
	t.Helper()
	patch := testPatch
	cfg := &config.Config{}
	cfg.Cache.Dir = t.TempDir()
	m := New(&fakeService{}, cfg)
	m.width = 120
	m.height = 40
	m.snapshot = &github.Snapshot{
		HeadSHA:  "abc1234def",
		PRTitle:  "Add things",
		PRAuthor: "octocat",
		Commits: []github.CommitInfo{
			{SHA: "abc1234def"},
		},
		FilesMap: map[string][]github.DiffFile{
			"abc1234def": {{Filename: "main.go", Status: "modified", Patch: &patch}},
		},
	}
	m.focus = common.PanelDiff
	m.rebuildDiff()
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestInitialCursorSkipsHeader(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 1, m.cursor, "cursor starts on the first addressable line")
}

func TestEnterAndCancelLineSelect(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 2

	m, _ = update(t, m, keyRunes("v"))
	assert.Equal(t, ModeLineSelect, m.mode)
	assert.Equal(t, 2, m.anchor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.pending, "cancel creates no pending comment")
}

func TestSelectRefusedOnHeader(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 0 // hunk header

	m, _ = update(t, m, keyRunes("v"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestSelectionStaysInHunk(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 4 // "+more", last line of the first hunk
	m, _ = update(t, m, keyRunes("v"))

	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 4, m.cursor, "selection cannot cross into the next hunk")

	m, _ = update(t, m, keyRunes("k"))
	assert.Equal(t, 3, m.cursor)
}

func TestSelectionRangeNormalised(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 3
	m, _ = update(t, m, keyRunes("v"))
	m, _ = update(t, m, keyRunes("k"))
	m, _ = update(t, m, keyRunes("k"))
	require.Equal(t, 1, m.cursor)

	m, _ = update(t, m, keyRunes("c"))
	require.Equal(t, ModeCommentInput, m.mode)
	for _, r := range "looks wrong" {
		m.commentEditor.InsertRune(r)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Len(t, m.pending, 1)
	assert.Equal(t, 1, m.pending[0].StartLine, "range is min(anchor,cursor)..max")
	assert.Equal(t, 3, m.pending[0].EndLine)
	assert.Equal(t, "main.go", m.pending[0].FilePath)
	assert.Equal(t, ModeNormal, m.mode)
}

func TestCommentOnCursorLine(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 3 // "+new"

	m, _ = update(t, m, keyRunes("c"))
	require.Equal(t, ModeCommentInput, m.mode)
	assert.Equal(t, 3, m.anchor, "one-line selection anchored at the cursor")

	for _, r := range "nice" {
		m.commentEditor.InsertRune(r)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Len(t, m.pending, 1)
	assert.Equal(t, 3, m.pending[0].StartLine)
	assert.Equal(t, 3, m.pending[0].EndLine)
}

func TestEmptyCommentRejected(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 3
	m, _ = update(t, m, keyRunes("c"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, ModeCommentInput, m.mode, "empty comment keeps the editor open")
	assert.Empty(t, m.pending)
}

func TestQuitWithoutPendingQuitsImmediately(t *testing.T) {
	m := newTestModel(t)
	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	m.pending = []github.PendingComment{{FilePath: "main.go", StartLine: 3, EndLine: 3, Body: "x", CommitSHA: "abc1234def"}}

	m, cmd := update(t, m, keyRunes("q"))
	assert.Nil(t, cmd)
	require.Equal(t, ModeQuitConfirm, m.mode)

	// Cancel returns to Normal with the queue intact.
	m, _ = update(t, m, keyRunes("c"))
	assert.Equal(t, ModeNormal, m.mode)
	assert.Len(t, m.pending, 1)

	// Submit-then-quit routes through the review submit mode.
	m, _ = update(t, m, keyRunes("q"))
	m, _ = update(t, m, keyRunes("y"))
	assert.Equal(t, ModeReviewSubmit, m.mode)
	assert.True(t, m.quitAfterSubmit)

	// Discard-and-quit.
	m.mode = ModeQuitConfirm
	_, cmd = update(t, m, keyRunes("n"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReviewSubmitCommentNeedsQueue(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("S"))
	require.Equal(t, ModeReviewSubmit, m.mode)
	require.Equal(t, github.EventComment, github.Events[m.eventCursor])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeReviewSubmit, m.mode, "COMMENT with an empty queue is refused")

	// Approve works without queued comments.
	m, _ = update(t, m, keyRunes("j"))
	require.Equal(t, github.EventApprove, github.Events[m.eventCursor])
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeReviewBodyInput, m.mode)
}

func TestReviewBodyCancelKeepsEventChoice(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeReviewSubmit
	m.eventCursor = 1

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ModeReviewBodyInput, m.mode)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeReviewSubmit, m.mode)
	assert.Equal(t, 1, m.eventCursor)
}

func TestSubmitQuitsWhenRequested(t *testing.T) {
	m := newTestModel(t)
	m.quitAfterSubmit = true
	_, cmd := update(t, m, common.ReviewSubmittedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSubmitErrorKeepsQueue(t *testing.T) {
	m := newTestModel(t)
	m.pending = []github.PendingComment{{FilePath: "main.go", StartLine: 3, EndLine: 3, Body: "x", CommitSHA: "abc1234def"}}
	m.quitAfterSubmit = true

	m, cmd := update(t, m, common.ReviewSubmittedMsg{Err: assert.AnError})
	assert.Nil(t, cmd)
	assert.Len(t, m.pending, 1)
	assert.False(t, m.quitAfterSubmit)
}

func TestHelpToggles(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, keyRunes("?"))
	assert.Equal(t, ModeHelp, m.mode)
	m, _ = update(t, m, keyRunes("?"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestHunkSequenceKeys(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, 1, m.cursor)

	m, _ = update(t, m, keyRunes("]"))
	m, _ = update(t, m, keyRunes("h"))
	assert.Equal(t, 6, m.cursor, "]h jumps past the second header")

	m, _ = update(t, m, keyRunes("["))
	m, _ = update(t, m, keyRunes("h"))
	assert.Equal(t, 1, m.cursor)
}

func TestGotoTopSequence(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 6
	m, _ = update(t, m, keyRunes("g"))
	assert.Equal(t, 6, m.cursor, "single g is pending, not a jump")
	m, _ = update(t, m, keyRunes("g"))
	assert.Equal(t, 1, m.cursor)
}

func TestWrapToggleConvertsScroll(t *testing.T) {
	m := newTestModel(t)
	m.height = 10 // small viewport so scrolling matters
	m.cursor = 6
	m.scroll = 3

	m, _ = update(t, m, keyRunes("w"))
	require.True(t, m.wrapOn)
	require.NotNil(t, m.offsets)
	// Short lines: one visual row each, so the offset is unchanged.
	assert.Equal(t, 3, m.scroll)

	m, _ = update(t, m, keyRunes("w"))
	assert.False(t, m.wrapOn)
	assert.Equal(t, 3, m.scroll)
	assert.Nil(t, m.offsets)
}

func TestPanelCycling(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, common.PanelDiff, m.focus)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, common.PanelDescription, m.focus)

	m, _ = update(t, m, keyRunes("3"))
	assert.Equal(t, common.PanelFiles, m.focus)
}

func TestCommentEditorScrollsWithCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 3
	m, _ = update(t, m, keyRunes("c"))
	require.Equal(t, ModeCommentInput, m.mode)

	for i := 0; i < 9; i++ {
		m, _ = update(t, m, keyRunes("x"))
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	_, row := m.commentEditor.CursorVisualPosition()
	assert.Less(t, row, editor.VisibleHeight, "cursor stays inside the overlay viewport")

	for i := 0; i < 9; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	_, row = m.commentEditor.CursorVisualPosition()
	assert.Equal(t, 0, row, "scroll follows the cursor back up")
}

func TestCommentEditorWidthMatchesOverlay(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, keyRunes("c"))
	require.Equal(t, ModeCommentInput, m.mode)

	w := views.EditorDisplayWidth(120)
	for i := 0; i < w-1; i++ {
		m, _ = update(t, m, keyRunes("x"))
	}
	col, row := m.commentEditor.CursorVisualPosition()
	assert.Equal(t, 0, row, "one short of the overlay width stays on one visual row")
	assert.Equal(t, w-1, col)

	m, _ = update(t, m, keyRunes("x"))
	_, row = m.commentEditor.CursorVisualPosition()
	assert.Equal(t, 1, row, "reaching the overlay width wraps to the next row")
}

func TestReloadKeepsCommitAndFileSelection(t *testing.T) {
	m := newTestModel(t)
	patch := testPatch
	second := "@@ -1 +1 @@\n-a\n+b"
	m.snapshot.HeadSHA = "def5678abc"
	m.snapshot.Commits = append(m.snapshot.Commits, github.CommitInfo{SHA: "def5678abc"})
	m.snapshot.FilesMap["def5678abc"] = []github.DiffFile{{Filename: "main.go", Status: "modified", Patch: &patch}}
	m.snapshot.FilesMap["abc1234def"] = append(m.snapshot.FilesMap["abc1234def"],
		github.DiffFile{Filename: "other.go", Status: "modified", Patch: &second})

	// Review the older commit's second file.
	m.reviewCommit = 0
	m.commitCursor = 0
	m.fileCursor = 1
	m.rebuildDiff()

	m, _ = update(t, m, common.PRLoadedMsg{Snapshot: m.snapshot})
	assert.Equal(t, 0, m.reviewCommit, "a snapshot reload keeps the reviewed commit")
	assert.Equal(t, 0, m.commitCursor)
	assert.Equal(t, 1, m.fileCursor, "the selected file survives by name")
}

func TestConversationCommentPosts(t *testing.T) {
	m := newTestModel(t)
	fake := m.svc.(*fakeService)
	m.focus = common.PanelDescription

	m, _ = update(t, m, keyRunes("c"))
	require.Equal(t, ModeCommentInput, m.mode)
	for _, r := range "ship it" {
		m.commentEditor.InsertRune(r)
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.pending, "conversation comments never enter the review queue")

	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, common.ConversationPostedMsg{}, msg)
	assert.Equal(t, "ship it", fake.posted)

	_, cmd = update(t, m, msg)
	assert.NotNil(t, cmd, "a posted comment reloads the conversation")
}

func TestConversationShownInDescription(t *testing.T) {
	m := newTestModel(t)
	reviewBody := "solid"
	m, _ = update(t, m, common.CommentsLoadedMsg{
		IssueComments: []github.IssueComment{{ID: 1, Body: "looks good", User: github.User{Login: "alice"}}},
		Reviews:       []github.ReviewSummary{{ID: 2, State: "APPROVED", Body: &reviewBody, User: github.User{Login: "bob"}}},
	})
	joined := strings.Join(m.descLines, "\n")
	assert.Contains(t, joined, "@alice")
	assert.Contains(t, joined, "@bob")
}

func TestCopyInLineSelectUsesRange(t *testing.T) {
	m := newTestModel(t)
	m.cursor = 2
	m, _ = update(t, m, keyRunes("v"))
	m, _ = update(t, m, keyRunes("j"))
	require.Equal(t, "-old\n+new", m.selectedText())

	m, _ = update(t, m, keyRunes("y"))
	assert.Equal(t, ModeNormal, m.mode, "yank leaves selection mode")
	assert.NotEmpty(t, m.statusMsg)
}

func TestQuitConfirmChoiceCycling(t *testing.T) {
	m := newTestModel(t)
	m.pending = []github.PendingComment{{FilePath: "main.go", StartLine: 3, EndLine: 3, Body: "x", CommitSHA: "abc1234def"}}
	m, _ = update(t, m, keyRunes("q"))
	require.Equal(t, ModeQuitConfirm, m.mode)
	require.Equal(t, 0, m.quitChoice)

	m, _ = update(t, m, keyRunes("l"))
	assert.Equal(t, 1, m.quitChoice)
	m, _ = update(t, m, keyRunes("h"))
	assert.Equal(t, 0, m.quitChoice)
	m, _ = update(t, m, keyRunes("h"))
	assert.Equal(t, 2, m.quitChoice, "backward from the first choice wraps")
}

func TestFileCursorRebuildsDiff(t *testing.T) {
	m := newTestModel(t)
	second := "@@ -1 +1 @@\n-a\n+b"
	m.snapshot.FilesMap["abc1234def"] = append(m.snapshot.FilesMap["abc1234def"],
		github.DiffFile{Filename: "other.go", Status: "modified", Patch: &second})
	m.focus = common.PanelFiles
	m.cursor = 5

	m, _ = update(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.fileCursor)
	assert.Equal(t, 3, m.patch.LineCount(), "diff state follows the file cursor")
	assert.Equal(t, 1, m.cursor, "cursor reset past the new patch's header")
}
