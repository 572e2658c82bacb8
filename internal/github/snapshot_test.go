package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	snap := &Snapshot{
		HeadSHA:  "abc1234",
		PRTitle:  "Add retry to fetcher",
		PRBody:   "Fixes flaky fetches",
		PRAuthor: "octocat",
		Commits: []CommitInfo{{
			SHA:    "abc1234",
			Commit: CommitDetail{Message: "add retry"},
		}},
		FilesMap: map[string][]DiffFile{
			"abc1234": {{
				Filename:  "fetch.go",
				Status:    "modified",
				Additions: 1,
				Patch:     strptr("@@ -1 +1 @@\n-old\n+new"),
			}},
		},
	}

	require.NoError(t, WriteSnapshot(dir, "owner", "repo", 42, snap))

	loaded, err := ReadSnapshot(dir, "owner", "repo", 42)
	require.NoError(t, err)
	assert.Equal(t, "abc1234", loaded.HeadSHA)
	assert.Equal(t, "Add retry to fetcher", loaded.PRTitle)
	assert.Equal(t, "octocat", loaded.PRAuthor)
	assert.Len(t, loaded.Commits, 1)
	require.Len(t, loaded.FilesMap["abc1234"], 1)
	require.NotNil(t, loaded.FilesMap["abc1234"][0].Patch)
	assert.Equal(t, "@@ -1 +1 @@\n-old\n+new", *loaded.FilesMap["abc1234"][0].Patch)
}

func TestReadSnapshotMissing(t *testing.T) {
	_, err := ReadSnapshot(t.TempDir(), "owner", "repo", 1)
	assert.Error(t, err)
}

func TestRemoveSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteSnapshot(dir, "o", "r", 7, &Snapshot{HeadSHA: "x"}))
	require.NoError(t, RemoveSnapshot(dir, "o", "r", 7))

	_, err := ReadSnapshot(dir, "o", "r", 7)
	assert.Error(t, err)

	// Removing again is not an error.
	assert.NoError(t, RemoveSnapshot(dir, "o", "r", 7))
}
