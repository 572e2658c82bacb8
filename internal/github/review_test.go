package github

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestBuildDraftCommentSingleLine(t *testing.T) {
	files := []DiffFile{{
		Filename:  "internal/app/model.go",
		Status:    "modified",
		Additions: 1,
		Deletions: 1,
		Patch:     strptr("@@ -1,2 +1,2 @@\n-old\n+new"),
	}}
	pending := PendingComment{
		FilePath:  "internal/app/model.go",
		StartLine: 2, // the +new line
		EndLine:   2,
		Body:      "Nice change!",
		CommitSHA: "abc123",
	}

	comment, err := BuildDraftComment(pending, files)
	require.NoError(t, err)
	assert.Equal(t, "internal/app/model.go", comment.Path)
	assert.Equal(t, "Nice change!", comment.Body)
	assert.Equal(t, 1, comment.Line)
	assert.Equal(t, "RIGHT", comment.Side)
	assert.Nil(t, comment.StartLine)
	assert.Nil(t, comment.StartSide)
}

func TestBuildDraftCommentMultiLine(t *testing.T) {
	files := []DiffFile{{
		Filename:  "main.go",
		Status:    "added",
		Additions: 3,
		Patch:     strptr("@@ -0,0 +1,3 @@\n+line1\n+line2\n+line3"),
	}}
	pending := PendingComment{
		FilePath:  "main.go",
		StartLine: 1,
		EndLine:   3,
		Body:      "Good block",
		CommitSHA: "abc123",
	}

	comment, err := BuildDraftComment(pending, files)
	require.NoError(t, err)
	assert.Equal(t, 3, comment.Line)
	assert.Equal(t, "RIGHT", comment.Side)
	require.NotNil(t, comment.StartLine)
	assert.Equal(t, 1, *comment.StartLine)
	require.NotNil(t, comment.StartSide)
	assert.Equal(t, "RIGHT", *comment.StartSide)
}

func TestBuildDraftCommentRemovedLine(t *testing.T) {
	files := []DiffFile{{
		Filename: "main.go",
		Status:   "modified",
		Patch:    strptr("@@ -1,2 +1,2 @@\n-old\n+new"),
	}}
	pending := PendingComment{
		FilePath:  "main.go",
		StartLine: 1, // the -old line
		EndLine:   1,
		Body:      "Why remove this?",
		CommitSHA: "abc123",
	}

	comment, err := BuildDraftComment(pending, files)
	require.NoError(t, err)
	assert.Equal(t, 1, comment.Line)
	assert.Equal(t, "LEFT", comment.Side)
}

func TestBuildDraftCommentHunkHeaderFails(t *testing.T) {
	files := []DiffFile{{
		Filename: "main.go",
		Status:   "modified",
		Patch:    strptr("@@ -1,1 +1,2 @@\n line1\n+line2"),
	}}
	pending := PendingComment{
		FilePath:  "main.go",
		StartLine: 0, // the hunk header line
		EndLine:   0,
		Body:      "Comment",
		CommitSHA: "abc123",
	}

	_, err := BuildDraftComment(pending, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hunk header")
}

func TestBuildDraftCommentFileNotFound(t *testing.T) {
	files := []DiffFile{{
		Filename: "main.go",
		Status:   "modified",
		Patch:    strptr("@@ -1,1 +1,1 @@\n+line"),
	}}
	pending := PendingComment{
		FilePath:  "nonexistent.go",
		StartLine: 1,
		EndLine:   1,
		Body:      "Comment",
		CommitSHA: "abc123",
	}

	_, err := BuildDraftComment(pending, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestBuildDraftCommentNoPatch(t *testing.T) {
	files := []DiffFile{{Filename: "image.png", Status: "added"}}
	pending := PendingComment{
		FilePath: "image.png",
		EndLine:  1,
		Body:     "Comment",
	}

	_, err := BuildDraftComment(pending, files)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patch")
}

func TestBuildReviewRequest(t *testing.T) {
	filesMap := map[string][]DiffFile{
		"abc123": {{
			Filename: "main.go",
			Status:   "modified",
			Patch:    strptr("@@ -1,2 +1,2 @@\n-old\n+new"),
		}},
	}
	pending := []PendingComment{{
		FilePath:  "main.go",
		StartLine: 2,
		EndLine:   2,
		Body:      "LGTM with a nit",
		CommitSHA: "abc123",
	}}

	req, err := BuildReviewRequest("headsha", "Looks good", EventComment, pending, filesMap)
	require.NoError(t, err)
	assert.Equal(t, "headsha", req.CommitID)
	assert.Equal(t, "Looks good", req.Body)
	assert.Equal(t, "COMMENT", req.Event)
	require.Len(t, req.Comments, 1)
	assert.Equal(t, 1, req.Comments[0].Line)
}

func TestBuildReviewRequestUnknownCommit(t *testing.T) {
	pending := []PendingComment{{
		FilePath:  "main.go",
		StartLine: 1,
		EndLine:   1,
		CommitSHA: "missing",
	}}

	_, err := BuildReviewRequest("head", "", EventApprove, pending, map[string][]DiffFile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files found for commit: missing")
}

func TestBuildReviewRequestCommentNeedsComments(t *testing.T) {
	_, err := BuildReviewRequest("head", "body", EventComment, nil, nil)
	require.Error(t, err)

	// APPROVE and REQUEST_CHANGES are fine without queued comments.
	req, err := BuildReviewRequest("head", "ship it", EventApprove, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "APPROVE", req.Event)
	assert.Empty(t, req.Comments)
}

func TestReviewRequestJSONOmitsEmptyStart(t *testing.T) {
	req := &ReviewRequest{
		CommitID: "sha",
		Event:    "COMMENT",
		Comments: []DraftComment{{Path: "a.go", Body: "b", Line: 3, Side: "RIGHT"}},
	}
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "start_line")
	assert.NotContains(t, string(data), "start_side")
}

func TestReviewEventStrings(t *testing.T) {
	assert.Equal(t, "COMMENT", EventComment.APIString())
	assert.Equal(t, "APPROVE", EventApprove.APIString())
	assert.Equal(t, "REQUEST_CHANGES", EventRequestChanges.APIString())
	assert.Equal(t, "Request changes", EventRequestChanges.Label())
	assert.Len(t, Events, 3)
}
