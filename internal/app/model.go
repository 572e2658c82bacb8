// Package app holds the top-level Bubbletea model: the interaction
// mode state machine, the four panels, and the review comment queue.
package app

import (
	"image"
	"time"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/config"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/editor"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/logging"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/media"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/ui"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/wrap"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Mode is the single process-wide interaction mode. Exactly one is
// active; every mode except the quit path returns to ModeNormal.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLineSelect
	ModeCommentInput
	ModeCommentView
	ModeReviewSubmit
	ModeReviewBodyInput
	ModeQuitConfirm
	ModeHelp
	ModeMediaViewer
)

// commentTarget distinguishes what ModeCommentInput is composing.
type commentTarget int

const (
	targetDiff commentTarget = iota
	targetConversation
)

// Model is the top-level Bubbletea model.
type Model struct {
	svc    github.Service
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	log    zerolog.Logger

	width  int
	height int

	mode  Mode
	focus common.PanelID

	// Startup options.
	forceRefresh  bool
	initialCommit string

	// PR data.
	snapshot      *github.Snapshot
	fromSnapshot  bool
	comments      []github.ReviewComment
	issueComments []github.IssueComment
	reviews       []github.ReviewSummary
	threads       []github.ReviewThread

	// Description panel.
	descLines  []string
	descScroll int

	// Commit panel. reviewCommit is the commit whose diff is shown.
	commitCursor int
	commitScroll int
	reviewCommit int

	// File panel.
	fileCursor int
	fileScroll int

	// Diff panel state, derived from the (commit, file) selection and
	// rebuilt whenever it changes.
	patch       *diff.Patch
	lineMap     diff.LineMap
	display     []string // highlighted lines aligned with the patch, nil = plain
	offsets     wrap.Table
	cursor      int
	scroll      int // visual rows when wrap is on, logical lines otherwise
	wrapOn      bool
	lineNumbers bool
	anchor      int // LineSelect anchor

	// Review comment queue.
	pending []github.PendingComment

	// Editors for comment bodies and the review body. commentTarget
	// says whether the comment editor is composing a diff comment or a
	// conversation comment.
	commentEditor *editor.TextEditor
	bodyEditor    *editor.TextEditor
	commentTarget commentTarget

	// ReviewSubmit / QuitConfirm state.
	eventCursor     int
	quitChoice      int
	quitAfterSubmit bool
	submitting      bool

	// CommentView scroll.
	threadScroll int

	// Media viewer.
	mediaRefs   []media.Ref
	mediaCache  *media.Cache
	mediaGen    int
	mediaImages map[string]image.Image
	mediaCursor int
	mediaScroll int

	// Transient status banner.
	statusMsg string
	statusErr bool
	statusExp time.Time

	// Pending leading key of a two-key sequence ("g", "]", "[").
	pendingKey string
}

// New creates the application model.
func New(svc github.Service, cfg *config.Config) Model {
	return Model{
		svc:           svc,
		cfg:           cfg,
		styles:        ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		keys:          DefaultKeyMap(),
		log:           logging.Component("app"),
		mode:          ModeNormal,
		focus:         common.PanelDiff,
		wrapOn:        cfg.UI.Wrap,
		lineNumbers:   cfg.UI.LineNumbers,
		commentEditor: editor.New(),
		bodyEditor:    editor.New(),
		mediaCache:    media.NewCache(),
		mediaImages:   make(map[string]image.Image),
	}
}

// ForceRefresh makes the initial load bypass the snapshot cache.
func (m *Model) ForceRefresh() { m.forceRefresh = true }

// SelectCommit picks the commit reviewed at startup by SHA prefix.
// An unknown prefix falls back to the head commit.
func (m *Model) SelectCommit(sha string) { m.initialCommit = sha }

// Init loads the pull request (snapshot first, then network) and the
// existing review comments.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPR(m.forceRefresh), m.loadComments())
}

// setStatus shows a transient status banner.
func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
	d := 3 * time.Second
	if isErr {
		d = 5 * time.Second
	}
	m.statusExp = time.Now().Add(d)
}

// files returns the file list of the reviewed commit, or nil while it
// is still loading.
func (m *Model) files() []github.DiffFile {
	if m.snapshot == nil {
		return nil
	}
	sha := m.reviewSHA()
	if sha == "" {
		return nil
	}
	return m.snapshot.FilesMap[sha]
}

// reviewSHA returns the SHA of the commit being reviewed.
func (m *Model) reviewSHA() string {
	if m.snapshot == nil || len(m.snapshot.Commits) == 0 {
		return ""
	}
	i := m.reviewCommit
	if i < 0 || i >= len(m.snapshot.Commits) {
		i = len(m.snapshot.Commits) - 1
	}
	return m.snapshot.Commits[i].SHA
}

// currentFile returns the file under the file-panel cursor.
func (m *Model) currentFile() *github.DiffFile {
	files := m.files()
	if m.fileCursor < 0 || m.fileCursor >= len(files) {
		return nil
	}
	return &files[m.fileCursor]
}
