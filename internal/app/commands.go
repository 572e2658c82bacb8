package app

import (
	"image"

	"github.com/Akashdeep-Patra/zed-pr-review/internal/common"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/github"
	"github.com/Akashdeep-Patra/zed-pr-review/internal/media"
	tea "github.com/charmbracelet/bubbletea"
)

// loadPR loads the pull request: from the on-disk snapshot when one
// exists and force is false, otherwise from the API (writing a fresh
// snapshot for the next run).
func (m Model) loadPR(force bool) tea.Cmd {
	svc := m.svc
	cacheDir := m.cfg.Cache.Dir
	return func() tea.Msg {
		if !force {
			if snap, err := github.ReadSnapshot(cacheDir, svc.Owner(), svc.Repo(), svc.Number()); err == nil {
				return common.PRLoadedMsg{Snapshot: snap, FromSnapshot: true}
			}
		}

		pr, err := svc.PullRequest()
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		commits, err := svc.Commits()
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		snap := &github.Snapshot{
			HeadSHA:  pr.Head.SHA,
			PRTitle:  pr.Title,
			PRBody:   pr.Body,
			PRAuthor: pr.User.Login,
			PRState:  pr.State,
			Commits:  commits,
			FilesMap: make(map[string][]github.DiffFile),
		}
		// File lists load lazily per commit; fetch the head commit's
		// now since it is shown first.
		if len(commits) > 0 {
			head := commits[len(commits)-1].SHA
			if files, err := svc.CommitFiles(head); err == nil {
				snap.FilesMap[head] = files
			}
		}
		if err := github.WriteSnapshot(cacheDir, svc.Owner(), svc.Repo(), svc.Number(), snap); err != nil {
			return common.ErrMsg{Err: err}
		}
		return common.PRLoadedMsg{Snapshot: snap}
	}
}

// loadFiles fetches one commit's changed files.
func (m Model) loadFiles(sha string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		files, err := svc.CommitFiles(sha)
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		return common.FilesLoadedMsg{SHA: sha, Files: files}
	}
}

// loadComments fetches the existing review comments, the conversation
// tab, and the resolvable threads.
func (m Model) loadComments() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		comments, err := svc.ReviewComments()
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		issueComments, err := svc.IssueComments()
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		reviews, err := svc.Reviews()
		if err != nil {
			return common.ErrMsg{Err: err}
		}
		threads, err := svc.ReviewThreads()
		if err != nil {
			// Threads need GraphQL scope; comments alone still work.
			threads = nil
		}
		return common.CommentsLoadedMsg{
			Comments:      comments,
			IssueComments: issueComments,
			Reviews:       reviews,
			Threads:       threads,
		}
	}
}

// postConversation posts a comment on the PR's conversation tab.
func (m Model) postConversation(body string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.PostIssueComment(body)
		return common.ConversationPostedMsg{Err: err}
	}
}

// submitReview builds and posts the queued review.
func (m Model) submitReview(event github.ReviewEvent, body string) tea.Cmd {
	svc := m.svc
	snap := m.snapshot
	pending := append([]github.PendingComment(nil), m.pending...)
	return func() tea.Msg {
		req, err := github.BuildReviewRequest(snap.HeadSHA, body, event, pending, snap.FilesMap)
		if err != nil {
			return common.ReviewSubmittedMsg{Err: err}
		}
		if err := svc.SubmitReview(req); err != nil {
			return common.ReviewSubmittedMsg{Err: err}
		}
		return common.ReviewSubmittedMsg{}
	}
}

// toggleThread resolves or unresolves a review thread.
func (m Model) toggleThread(nodeID string, resolved bool) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		var (
			now bool
			err error
		)
		if resolved {
			now, err = svc.UnresolveThread(nodeID)
		} else {
			now, err = svc.ResolveThread(nodeID)
		}
		return common.ThreadToggledMsg{NodeID: nodeID, Resolved: now, Err: err}
	}
}

// downloadMedia fetches the given image URLs in the background. The
// generation tag lets the model discard results that were superseded
// by a newer viewer session; stale results still land in the cache.
func (m Model) downloadMedia(gen int, urls []string) tea.Cmd {
	cache := m.mediaCache
	tokenCommand := m.cfg.GitHub.TokenCommand
	return func() tea.Msg {
		token, _ := github.Token(tokenCommand)
		media.Download(cache, urls, token)
		images := make(map[string]image.Image, len(urls))
		for _, u := range urls {
			if img, ok := cache.Get(u); ok {
				images[u] = img
			}
		}
		return common.MediaLoadedMsg{Generation: gen, Images: images}
	}
}
