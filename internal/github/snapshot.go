package github

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot is the locally persisted copy of a pull request: the PR
// metadata plus every commit's file list and patches. It lets the app
// start instantly on a revisit and keeps working offline; --refresh
// discards it.
type Snapshot struct {
	HeadSHA  string                `json:"head_sha"`
	PRTitle  string                `json:"pr_title"`
	PRBody   string                `json:"pr_body"`
	PRAuthor string                `json:"pr_author"`
	PRState  string                `json:"pr_state"`
	Commits  []CommitInfo          `json:"commits"`
	FilesMap map[string][]DiffFile `json:"files_map"`
}

// SnapshotPath returns the snapshot file location for one pull request
// under the given cache directory.
func SnapshotPath(dir, owner, repo string, number int) string {
	return filepath.Join(dir, owner, repo, fmt.Sprintf("pr-%d.json", number))
}

// ReadSnapshot loads a previously written snapshot. A missing or
// unreadable file returns an error; callers treat that as a cache miss.
func ReadSnapshot(dir, owner, repo string, number int) (*Snapshot, error) {
	path := SnapshotPath(dir, owner, repo, number)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// WriteSnapshot persists the snapshot, creating the directory tree as
// needed. The write goes through a temp file and rename so a watcher
// on the directory never sees a half-written snapshot.
func WriteSnapshot(dir, owner, repo string, number int, snap *Snapshot) error {
	path := SnapshotPath(dir, owner, repo, number)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// RemoveSnapshot deletes the persisted snapshot if present.
func RemoveSnapshot(dir, owner, repo string, number int) error {
	err := os.Remove(SnapshotPath(dir, owner, repo, number))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
