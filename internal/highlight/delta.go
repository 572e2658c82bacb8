// Package highlight colorizes patch text for the diff view. When the
// delta binary is installed the patch is piped through it; otherwise a
// built-in chroma highlighter is used.
package highlight

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"
)

const deltaTimeout = 10 * time.Second

var (
	deltaBin   = "delta"
	deltaOnce  sync.Once
	deltaFound bool
)

// SetDeltaCommand overrides the delta binary name, e.g. a wrapper
// script or an absolute path. Must be called before the first
// highlight; an empty command keeps the default.
func SetDeltaCommand(cmd string) {
	if cmd != "" {
		deltaBin = cmd
	}
}

// HasDelta reports whether the delta binary is available. The check
// runs once per process.
func HasDelta() bool {
	deltaOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), deltaTimeout)
		defer cancel()
		deltaFound = exec.CommandContext(ctx, deltaBin, "--version").Run() == nil
	})
	return deltaFound
}

// runDelta pipes the diff through delta and returns its ANSI output.
// --no-gitconfig ignores the user's delta config, --color-only keeps
// line structure, and raw hunk headers let the diff view style @@
// lines itself.
func runDelta(diff string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), deltaTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, deltaBin,
		"--no-gitconfig",
		"--paging=never",
		"--color-only",
		"--hunk-header-style=raw",
	)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return "", err
	}
	// Write stdin from another goroutine. On large diffs the stdin
	// pipe buffer fills and Write blocks; the concurrent stdout read
	// below prevents the deadlock.
	go func() {
		_, _ = stdin.Write([]byte(diff))
		_ = stdin.Close()
	}()

	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("delta: %w", err)
	}
	return stdout.String(), nil
}

var ansiEscapes = regexp.MustCompile("\x1b\\[[0-9;]*m")

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	return ansiEscapes.ReplaceAllString(s, "")
}

// diffHeader fabricates a git diff header so delta can detect the
// file's language from its name.
func diffHeader(filename string) string {
	return fmt.Sprintf("diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n", filename, filename, filename, filename)
}

// DeltaPatch highlights a patch with delta and returns one ANSI string
// per patch line, aligned with the input. ok is false when delta is
// not installed or its output cannot be aligned; the caller then falls
// back to chroma.
//
// For whole-file statuses (added/removed/deleted) every line carries
// the same diff color, which hides the syntax highlighting; those
// patches are rewritten as context lines before piping so only syntax
// colors remain, and the padding space is stripped afterwards.
func DeltaPatch(patch, filename, status string) ([]string, bool) {
	if !HasDelta() {
		return nil, false
	}

	wholeFile := status == "added" || status == "removed" || status == "deleted"

	body := patch
	if wholeFile {
		lines := strings.Split(patch, "\n")
		for i, l := range lines {
			if strings.HasPrefix(l, "+") || strings.HasPrefix(l, "-") {
				lines[i] = " " + l[1:]
			}
		}
		body = strings.Join(lines, "\n")
	}

	out, err := runDelta(diffHeader(filename) + body)
	if err != nil {
		return nil, false
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// Drop the fabricated header. delta sometimes pads around it, so
	// find the first @@ line instead of counting header lines.
	firstHunk := -1
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimLeft(stripANSI(l), " "), "@@") {
			firstHunk = i
			break
		}
	}
	if firstHunk < 0 {
		return nil, false
	}
	lines = lines[firstHunk:]

	// Remove blank lines delta inserted. Every real patch line has a
	// prefix character, so a line with no printable content is not
	// part of the patch.
	expected := len(strings.Split(patch, "\n"))
	for len(lines) > expected {
		removed := false
		for i, l := range lines {
			if strings.TrimSpace(stripANSI(l)) == "" {
				lines = append(lines[:i], lines[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	if len(lines) != expected {
		return nil, false
	}

	if wholeFile {
		for i, l := range lines {
			if strings.HasPrefix(stripANSI(l), "@@") {
				continue
			}
			lines[i] = removeFirstSpace(l)
		}
	}
	return lines, true
}

// removeFirstSpace drops the first printable space of an ANSI string,
// leaving escape sequences intact.
func removeFirstSpace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			end := ansiEscapes.FindStringIndex(s[i:])
			if end != nil && end[0] == 0 {
				i += end[1] - 1
				continue
			}
		}
		if s[i] == ' ' {
			return s[:i] + s[i+1:]
		}
		break
	}
	return s
}
