// Package watcher monitors a pull request's snapshot file for changes
// and notifies the TUI to reload. Snapshots are written atomically via
// temp-file-and-rename, so a rename event on the snapshot path means a
// complete new snapshot is in place. This keeps multiple zpr instances
// (or an external refresh script) looking at the same PR in sync
// without polling the GitHub API.
package watcher

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watched snapshot changes on disk.
type Event struct{}

// Watch monitors the snapshot file at snapshotPath and sends Event
// values on the returned channel when it is rewritten. The watch is
// placed on the containing directory so the atomic rename that
// replaces the snapshot is observed. Rapid bursts are coalesced via
// the debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(snapshotPath string, debounce time.Duration) (<-chan Event, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	dir := filepath.Dir(snapshotPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = w.Close()
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, nil, err
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// jitterRange adds randomness to the debounce so multiple zpr
	// instances watching the same snapshot fire at slightly different
	// times instead of hitting the GitHub CLI in lockstep.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if shouldIgnore(ev.Name, snapshotPath) {
					continue
				}
				jitter := time.Duration(rand.Int63n(int64(jitterRange)))
				d := debounce + jitter
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for events that should not trigger a reload.
// Only the final snapshot file matters; the .tmp staging file and any
// sibling PR snapshots in the same directory are noise.
func shouldIgnore(path, snapshotPath string) bool {
	base := filepath.Base(path)

	// The in-progress write. The rename that follows is the signal.
	if strings.HasSuffix(base, ".tmp") {
		return true
	}

	// Editor swap/temp files that end up in the cache directory.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, "~") ||
		strings.HasPrefix(base, ".#") {
		return true
	}

	return base != filepath.Base(snapshotPath)
}
