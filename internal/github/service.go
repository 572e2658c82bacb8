package github

// Service defines the contract for all GitHub operations against one
// pull request. The app depends on this interface, never on the gh CLI
// directly, which keeps it testable via mock implementations.
type Service interface {
	// ── Identity ─────────────────────────────────────────────────────
	Owner() string
	Repo() string
	Number() int

	// ── Reads ────────────────────────────────────────────────────────
	PullRequest() (*PullRequest, error)
	Commits() ([]CommitInfo, error)
	CommitFiles(sha string) ([]DiffFile, error)
	ReviewComments() ([]ReviewComment, error)
	IssueComments() ([]IssueComment, error)
	Reviews() ([]ReviewSummary, error)
	ReviewThreads() ([]ReviewThread, error)

	// ── Writes ───────────────────────────────────────────────────────
	SubmitReview(req *ReviewRequest) error
	PostIssueComment(body string) (*IssueComment, error)
	ResolveThread(nodeID string) (bool, error)
	UnresolveThread(nodeID string) (bool, error)
}
