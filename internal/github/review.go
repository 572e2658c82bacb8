package github

import (
	"fmt"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/diff"
)

// ReviewEvent is the kind of review being submitted.
type ReviewEvent int

const (
	EventComment ReviewEvent = iota
	EventApprove
	EventRequestChanges
)

// Events lists the selectable review events in display order.
var Events = []ReviewEvent{EventComment, EventApprove, EventRequestChanges}

// APIString returns the review API spelling of the event.
func (e ReviewEvent) APIString() string {
	switch e {
	case EventApprove:
		return "APPROVE"
	case EventRequestChanges:
		return "REQUEST_CHANGES"
	default:
		return "COMMENT"
	}
}

// Label returns the human-readable name shown in the submit dialog.
func (e ReviewEvent) Label() string {
	switch e {
	case EventApprove:
		return "Approve"
	case EventRequestChanges:
		return "Request changes"
	default:
		return "Comment"
	}
}

// PendingComment is a draft review comment queued locally until the
// review is submitted. StartLine and EndLine are logical patch line
// indexes into the file's patch at CommitSHA; for a single-line
// comment they are equal.
type PendingComment struct {
	FilePath  string
	StartLine int
	EndLine   int
	Body      string
	CommitSHA string
}

// DraftComment is one comment of a review request, in review API form.
// Line and Side locate the comment's end (or only) line in the target
// file; StartLine and StartSide are set only for multi-line comments.
type DraftComment struct {
	Path      string  `json:"path"`
	Body      string  `json:"body"`
	Line      int     `json:"line"`
	Side      string  `json:"side"`
	StartLine *int    `json:"start_line,omitempty"`
	StartSide *string `json:"start_side,omitempty"`
}

// ReviewRequest is the create-review API payload.
type ReviewRequest struct {
	CommitID string         `json:"commit_id"`
	Body     string         `json:"body"`
	Event    string         `json:"event"`
	Comments []DraftComment `json:"comments"`
}

// BuildDraftComment resolves a pending comment's patch line indexes to
// file lines and sides using the patch of the commented file.
func BuildDraftComment(pending PendingComment, files []DiffFile) (DraftComment, error) {
	var file *DiffFile
	for i := range files {
		if files[i].Filename == pending.FilePath {
			file = &files[i]
			break
		}
	}
	if file == nil {
		return DraftComment{}, fmt.Errorf("file not found: %s", pending.FilePath)
	}
	if file.Patch == nil {
		return DraftComment{}, fmt.Errorf("no patch for file: %s", pending.FilePath)
	}

	lineMap := diff.BuildLineMap(diff.New(*file.Patch))

	endInfo := lineMap.At(pending.EndLine)
	if endInfo == nil {
		return DraftComment{}, fmt.Errorf("cannot comment on hunk header line (end line %d)", pending.EndLine)
	}

	comment := DraftComment{
		Path: pending.FilePath,
		Body: pending.Body,
		Line: endInfo.FileLine,
		Side: endInfo.Side.String(),
	}
	if pending.StartLine == pending.EndLine {
		return comment, nil
	}

	startInfo := lineMap.At(pending.StartLine)
	if startInfo == nil {
		return DraftComment{}, fmt.Errorf("cannot comment on hunk header line (start line %d)", pending.StartLine)
	}
	startLine := startInfo.FileLine
	startSide := startInfo.Side.String()
	comment.StartLine = &startLine
	comment.StartSide = &startSide
	return comment, nil
}

// BuildReviewRequest assembles the full review payload from the queued
// comments. Every comment's patch line indexes are resolved against
// the files of the commit it was written on; the review itself anchors
// to headSHA. A COMMENT review with nothing queued is rejected, the
// review API refuses those.
func BuildReviewRequest(headSHA, body string, event ReviewEvent, pending []PendingComment, filesMap map[string][]DiffFile) (*ReviewRequest, error) {
	if event == EventComment && len(pending) == 0 {
		return nil, fmt.Errorf("a COMMENT review needs at least one pending comment")
	}

	comments := make([]DraftComment, 0, len(pending))
	for _, p := range pending {
		files, ok := filesMap[p.CommitSHA]
		if !ok {
			return nil, fmt.Errorf("no files found for commit: %s", p.CommitSHA)
		}
		comment, err := BuildDraftComment(p, files)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return &ReviewRequest{
		CommitID: headSHA,
		Body:     body,
		Event:    event.APIString(),
		Comments: comments,
	}, nil
}
