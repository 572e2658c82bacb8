package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// cmdTimeout is the maximum duration any single gh command may run.
// Prevents hangs on slow networks or huge pull requests.
const cmdTimeout = 60 * time.Second

// CLIService implements Service by shelling out to the gh CLI.
// gh handles authentication and host selection, so the app never
// touches tokens for API access:
//   - Context-based timeouts prevent hangs
//   - Stdout/Stderr separated — warning noise doesn't corrupt JSON
//   - --paginate on list endpoints so large PRs come back complete
type CLIService struct {
	owner  string
	repo   string
	number int
}

// Compile-time check that CLIService implements Service.
var _ Service = (*CLIService)(nil)

// NewCLIService returns a Service for one pull request.
func NewCLIService(owner, repo string, number int) *CLIService {
	return &CLIService{owner: owner, repo: repo, number: number}
}

// Owner returns the repository owner.
func (s *CLIService) Owner() string { return s.owner }

// Repo returns the repository name.
func (s *CLIService) Repo() string { return s.repo }

// Number returns the pull request number.
func (s *CLIService) Number() int { return s.number }

// ── helpers ─────────────────────────────────────────────────────────────────

// runGH executes a gh command with a context timeout. stdin, when
// non-nil, is fed to the process (used for --input - POST bodies).
func runGH(stdin []byte, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "gh", args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return nil, fmt.Errorf("gh %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.Bytes(), nil
}

// getJSON fetches a REST endpoint and decodes the response into out.
func getJSON(out any, endpoint string, paginate bool) error {
	args := []string{"api", endpoint}
	if paginate {
		args = append(args, "--paginate", "--slurp")
	}
	data, err := runGH(nil, args...)
	if err != nil {
		return err
	}
	if paginate {
		// --slurp wraps each page's array in an outer array.
		var pages []json.RawMessage
		if err := json.Unmarshal(data, &pages); err != nil {
			return fmt.Errorf("decoding %s: %w", endpoint, err)
		}
		return mergePages(out, pages, endpoint)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

// mergePages flattens --slurp page arrays into a single slice. out
// must be a pointer to a slice type.
func mergePages(out any, pages []json.RawMessage, endpoint string) error {
	var merged bytes.Buffer
	merged.WriteByte('[')
	first := true
	for _, page := range pages {
		trimmed := bytes.TrimSpace(page)
		if len(trimmed) < 2 || trimmed[0] != '[' {
			return fmt.Errorf("decoding %s: unexpected page shape", endpoint)
		}
		inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])
		if len(inner) == 0 {
			continue
		}
		if !first {
			merged.WriteByte(',')
		}
		merged.Write(inner)
		first = false
	}
	merged.WriteByte(']')
	if err := json.Unmarshal(merged.Bytes(), out); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

func (s *CLIService) endpoint(format string, args ...any) string {
	prefix := fmt.Sprintf("repos/%s/%s", s.owner, s.repo)
	return prefix + fmt.Sprintf(format, args...)
}

// ── Reads ───────────────────────────────────────────────────────────────────

// PullRequest fetches the pull request itself.
func (s *CLIService) PullRequest() (*PullRequest, error) {
	var pr PullRequest
	if err := getJSON(&pr, s.endpoint("/pulls/%d", s.number), false); err != nil {
		return nil, err
	}
	return &pr, nil
}

// Commits fetches the commits of the pull request, oldest first.
func (s *CLIService) Commits() ([]CommitInfo, error) {
	var commits []CommitInfo
	if err := getJSON(&commits, s.endpoint("/pulls/%d/commits", s.number), true); err != nil {
		return nil, err
	}
	return commits, nil
}

// CommitFiles fetches the changed files of one commit, including
// patches.
func (s *CLIService) CommitFiles(sha string) ([]DiffFile, error) {
	var resp struct {
		Files []DiffFile `json:"files"`
	}
	if err := getJSON(&resp, s.endpoint("/commits/%s", sha), false); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// ReviewComments fetches all diff-anchored review comments.
func (s *CLIService) ReviewComments() ([]ReviewComment, error) {
	var comments []ReviewComment
	if err := getJSON(&comments, s.endpoint("/pulls/%d/comments", s.number), true); err != nil {
		return nil, err
	}
	return comments, nil
}

// IssueComments fetches the conversation-tab comments.
func (s *CLIService) IssueComments() ([]IssueComment, error) {
	var comments []IssueComment
	if err := getJSON(&comments, s.endpoint("/issues/%d/comments", s.number), true); err != nil {
		return nil, err
	}
	return comments, nil
}

// Reviews fetches the submitted reviews.
func (s *CLIService) Reviews() ([]ReviewSummary, error) {
	var reviews []ReviewSummary
	if err := getJSON(&reviews, s.endpoint("/pulls/%d/reviews", s.number), true); err != nil {
		return nil, err
	}
	return reviews, nil
}

// reviewThreadsQuery fetches up to 100 review threads. Pagination is
// not implemented; threads past the first 100 are not shown.
const reviewThreadsQuery = `query($owner: String!, $repo: String!, $pr: Int!) {
  repository(owner: $owner, name: $repo) {
    pullRequest(number: $pr) {
      reviewThreads(first: 100) {
        nodes {
          id
          isResolved
          comments(first: 1) {
            nodes {
              databaseId
            }
          }
        }
      }
    }
  }
}`

// ReviewThreads fetches the resolvable review threads via GraphQL.
func (s *CLIService) ReviewThreads() ([]ReviewThread, error) {
	data, err := runGH(nil,
		"api", "graphql",
		"-f", "query="+reviewThreadsQuery,
		"-F", "owner="+s.owner,
		"-F", "repo="+s.repo,
		"-F", fmt.Sprintf("pr=%d", s.number),
	)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data struct {
			Repository struct {
				PullRequest struct {
					ReviewThreads struct {
						Nodes []struct {
							ID         string `json:"id"`
							IsResolved bool   `json:"isResolved"`
							Comments   struct {
								Nodes []struct {
									DatabaseID int64 `json:"databaseId"`
								} `json:"nodes"`
							} `json:"comments"`
						} `json:"nodes"`
					} `json:"reviewThreads"`
				} `json:"pullRequest"`
			} `json:"repository"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding review threads: %w", err)
	}

	var threads []ReviewThread
	for _, node := range resp.Data.Repository.PullRequest.ReviewThreads.Nodes {
		if node.ID == "" || len(node.Comments.Nodes) == 0 {
			continue
		}
		rootID := node.Comments.Nodes[0].DatabaseID
		if rootID == 0 {
			continue
		}
		threads = append(threads, ReviewThread{
			NodeID:        node.ID,
			IsResolved:    node.IsResolved,
			RootCommentID: rootID,
		})
	}
	return threads, nil
}

// ── Writes ──────────────────────────────────────────────────────────────────

// SubmitReview posts the review with its batched comments.
func (s *CLIService) SubmitReview(req *ReviewRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding review: %w", err)
	}
	_, err = runGH(body,
		"api", "--method", "POST",
		s.endpoint("/pulls/%d/reviews", s.number),
		"--input", "-",
	)
	return err
}

// PostIssueComment posts a conversation-tab comment.
func (s *CLIService) PostIssueComment(body string) (*IssueComment, error) {
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return nil, fmt.Errorf("encoding comment: %w", err)
	}
	data, err := runGH(payload,
		"api", "--method", "POST",
		s.endpoint("/issues/%d/comments", s.number),
		"--input", "-",
	)
	if err != nil {
		return nil, err
	}
	var comment IssueComment
	if err := json.Unmarshal(data, &comment); err != nil {
		return nil, fmt.Errorf("decoding comment: %w", err)
	}
	return &comment, nil
}

// toggleThread flips a thread's resolved state and returns the value
// the API reports back.
func toggleThread(nodeID string, resolve bool) (bool, error) {
	mutation := "unresolveReviewThread"
	if resolve {
		mutation = "resolveReviewThread"
	}
	query := fmt.Sprintf(`mutation($threadId: ID!) {
  %s(input: {threadId: $threadId}) {
    thread {
      isResolved
    }
  }
}`, mutation)

	data, err := runGH(nil,
		"api", "graphql",
		"-f", "query="+query,
		"-F", "threadId="+nodeID,
	)
	if err != nil {
		return false, err
	}

	var resp map[string]map[string]map[string]map[string]bool
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("decoding %s: %w", mutation, err)
	}
	resolved, ok := resp["data"][mutation]["thread"]["isResolved"]
	if !ok {
		return false, fmt.Errorf("%s: unexpected response format", mutation)
	}
	return resolved, nil
}

// ResolveThread marks a review thread as resolved.
func (s *CLIService) ResolveThread(nodeID string) (bool, error) {
	return toggleThread(nodeID, true)
}

// UnresolveThread reopens a resolved review thread.
func (s *CLIService) UnresolveThread(nodeID string) (bool, error) {
	return toggleThread(nodeID, false)
}

// Token returns a GitHub API token for direct HTTP requests (media
// downloads). A configured token command wins, then GITHUB_TOKEN,
// then gh's stored credentials.
func Token(tokenCommand string) (string, error) {
	if tokenCommand != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
		defer cancel()
		out, err := exec.CommandContext(ctx, "sh", "-c", tokenCommand).Output()
		if err != nil {
			return "", fmt.Errorf("token command %q: %w", tokenCommand, err)
		}
		return strings.TrimSpace(string(out)), nil
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	out, err := runGH(nil, "auth", "token")
	if err != nil {
		return "", fmt.Errorf("no GitHub token: set GITHUB_TOKEN or run `gh auth login`: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
