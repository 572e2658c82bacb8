package github

import (
	"fmt"
	"strings"
)

// PullRequest is the subset of the pull request payload the app needs.
type PullRequest struct {
	Number  int      `json:"number"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	State   string   `json:"state"`
	User    User     `json:"user"`
	Head    Ref      `json:"head"`
	HTMLURL string   `json:"html_url"`
}

// User identifies a GitHub account.
type User struct {
	Login string `json:"login"`
}

// Ref is one end of a pull request.
type Ref struct {
	SHA string `json:"sha"`
	Ref string `json:"ref"`
}

// CommitInfo is one commit of a pull request.
type CommitInfo struct {
	SHA    string       `json:"sha"`
	Commit CommitDetail `json:"commit"`
}

// CommitDetail holds the commit message.
type CommitDetail struct {
	Message string `json:"message"`
}

// ShortSHA returns the abbreviated commit hash.
func (c CommitInfo) ShortSHA() string {
	if len(c.SHA) < 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// MessageSummary returns the first line of the commit message.
func (c CommitInfo) MessageSummary() string {
	summary, _, _ := strings.Cut(c.Commit.Message, "\n")
	return summary
}

// DiffFile is one changed file of a commit. Patch is nil for binary
// files and for files too large for the API to inline.
type DiffFile struct {
	Filename  string  `json:"filename"`
	Status    string  `json:"status"` // "added", "modified", "removed", "deleted", "renamed"
	Additions int     `json:"additions"`
	Deletions int     `json:"deletions"`
	Patch     *string `json:"patch,omitempty"`
}

// StatusChar returns the one-letter marker shown in the file list.
func (f DiffFile) StatusChar() byte {
	switch f.Status {
	case "added":
		return 'A'
	case "modified":
		return 'M'
	case "removed", "deleted":
		return 'D'
	case "renamed":
		return 'R'
	default:
		return '?'
	}
}

// ChangesDisplay returns the added/deleted counts, e.g. "+10 -5".
func (f DiffFile) ChangesDisplay() string {
	return fmt.Sprintf("+%d -%d", f.Additions, f.Deletions)
}

// ReviewComment is an existing review comment on the diff.
type ReviewComment struct {
	ID          int64   `json:"id"`
	Body        string  `json:"body"`
	Path        string  `json:"path"`
	Line        *int    `json:"line"`
	StartLine   *int    `json:"start_line"`
	Side        *string `json:"side"`
	StartSide   *string `json:"start_side"`
	CommitID    string  `json:"commit_id"`
	User        User    `json:"user"`
	CreatedAt   string  `json:"created_at"`
	InReplyToID *int64  `json:"in_reply_to_id"`
}

// RootCommentID returns the database ID of the thread's root comment.
// The first comment of a thread is either the root itself or a reply
// pointing at the root.
func RootCommentID(comments []ReviewComment) (int64, bool) {
	if len(comments) == 0 {
		return 0, false
	}
	c := comments[0]
	if c.InReplyToID != nil {
		return *c.InReplyToID, true
	}
	return c.ID, true
}

// IssueComment is a conversation-tab comment on the pull request.
type IssueComment struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	User      User   `json:"user"`
	CreatedAt string `json:"created_at"`
}

// ReviewSummary is one submitted review (APPROVED, CHANGES_REQUESTED,
// COMMENTED, DISMISSED).
type ReviewSummary struct {
	ID          int64   `json:"id"`
	User        User    `json:"user"`
	Body        *string `json:"body"`
	State       string  `json:"state"`
	SubmittedAt *string `json:"submitted_at"`
}

// ReviewThread is a resolvable thread of review comments.
type ReviewThread struct {
	NodeID        string
	IsResolved    bool
	RootCommentID int64
}
