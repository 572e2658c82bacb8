package common

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
)

// ── Panel identifiers ───────────────────────────────────────────────────────

// PanelID identifies which panel holds focus.
type PanelID int

const (
	PanelDescription PanelID = iota
	PanelCommits
	PanelFiles
	PanelDiff
)

// PanelMeta describes a panel for display purposes.
type PanelMeta struct {
	ID       PanelID
	Name     string // Title shown in the panel border.
	Shortcut string // Mnemonic focus shortcut hint (e.g., "1").
}

// AllPanels is the ordered list of panels. Tab/Shift+Tab cycles focus
// through them; the number keys jump directly.
var AllPanels = []PanelMeta{
	{PanelDescription, "Description", "1"},
	{PanelCommits, "Commits", "2"},
	{PanelFiles, "Files", "3"},
	{PanelDiff, "Diff", "4"},
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals the app to reload PR data.
type RefreshMsg struct{}

// SnapshotChangedMsg signals that the snapshot on disk was rewritten
// by another process; the app reloads from disk instead of the API.
type SnapshotChangedMsg struct{}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// PRLoadedMsg carries a freshly fetched or snapshot-restored pull
// request. FromSnapshot marks data served from disk without touching
// the API.
type PRLoadedMsg struct {
	Snapshot     *github.Snapshot
	FromSnapshot bool
}

// FilesLoadedMsg carries one commit's file list, fetched lazily when
// the commit is first selected.
type FilesLoadedMsg struct {
	SHA   string
	Files []github.DiffFile
}

// CommentsLoadedMsg carries the existing review comments plus the
// conversation tab: issue comments and submitted reviews.
type CommentsLoadedMsg struct {
	Comments      []github.ReviewComment
	IssueComments []github.IssueComment
	Reviews       []github.ReviewSummary
	Threads       []github.ReviewThread
}

// ConversationPostedMsg reports the outcome of posting a conversation
// comment.
type ConversationPostedMsg struct {
	Err error
}

// ReviewSubmittedMsg reports the outcome of a review submission.
type ReviewSubmittedMsg struct {
	Err error
}

// ThreadToggledMsg reports a resolve/unresolve outcome.
type ThreadToggledMsg struct {
	NodeID   string
	Resolved bool
	Err      error
}

// MediaLoadedMsg signals that a batch of media downloads finished.
// Generation guards against stale batches: the viewer ignores results
// from a batch started for previously shown content.
type MediaLoadedMsg struct {
	Generation int
	Images     map[string]image.Image
}

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
