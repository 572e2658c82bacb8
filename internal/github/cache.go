package github

import (
	"sync"
	"time"
)

// CachedService wraps a Service implementation with a TTL-based cache
// for API reads. Write operations (SubmitReview, ResolveThread, etc.)
// automatically invalidate the cache so the next read is fresh.
//
// Several views request overlapping data (the status bar, the comment
// overlay and the diff badges all want ReviewComments) within the same
// refresh cycle. Without caching, a single refresh could spawn a dozen
// gh subprocesses. With caching, each endpoint is hit once per TTL.
//
// The cache is bounded by maxCacheEntries to prevent unbounded memory
// growth across long-running sessions.
type CachedService struct {
	inner Service
	ttl   time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// maxCacheEntries caps the number of entries in the cache. Per-commit
// file lists dominate the key space, so the cap scales with the
// largest PR that stays fully cached.
const maxCacheEntries = 128

type cacheEntry struct {
	val    any
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps an existing Service with a TTL cache.
// Commit file lists are immutable for a given SHA, so a generous TTL
// (minutes) is safe; only the comment and review listings go stale.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		ttl:   ttl,
		cache: make(map[string]cacheEntry, 16),
	}
}

// Invalidate clears all cached entries. Called after any write
// operation.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.cache = make(map[string]cacheEntry, 16)
	c.mu.Unlock()
}

func (c *CachedService) get(key string) (val any, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.cache[key]
	if !found || time.Now().After(e.expiry) {
		return nil, false, nil
	}
	return e.val, true, e.err
}

func (c *CachedService) set(key string, val any, err error) {
	c.mu.Lock()
	if len(c.cache) >= maxCacheEntries {
		now := time.Now()
		for k, e := range c.cache {
			if now.After(e.expiry) {
				delete(c.cache, k)
			}
		}
		// If still over limit after eviction, flush entirely.
		if len(c.cache) >= maxCacheEntries {
			c.cache = make(map[string]cacheEntry, 16)
		}
	}
	c.cache[key] = cacheEntry{val: val, err: err, expiry: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// invalidateAndReturn is a helper for write methods.
func (c *CachedService) invalidateAndReturn(err error) error {
	if err == nil {
		c.Invalidate()
	}
	return err
}

// ── Identity (delegated) ────────────────────────────────────────────────────

// Owner delegates to the inner service.
func (c *CachedService) Owner() string { return c.inner.Owner() }

// Repo delegates to the inner service.
func (c *CachedService) Repo() string { return c.inner.Repo() }

// Number delegates to the inner service.
func (c *CachedService) Number() int { return c.inner.Number() }

// ── Reads (cached) ──────────────────────────────────────────────────────────

// PullRequest returns the pull request (cached).
func (c *CachedService) PullRequest() (*PullRequest, error) {
	if v, ok, err := c.get("pr"); ok {
		return v.(*PullRequest), err
	}
	v, err := c.inner.PullRequest()
	c.set("pr", v, err)
	return v, err
}

// Commits returns the PR's commits (cached).
func (c *CachedService) Commits() ([]CommitInfo, error) {
	if v, ok, err := c.get("commits"); ok {
		return v.([]CommitInfo), err
	}
	v, err := c.inner.Commits()
	c.set("commits", v, err)
	return v, err
}

// CommitFiles returns the changed files of one commit (cached per
// SHA).
func (c *CachedService) CommitFiles(sha string) ([]DiffFile, error) {
	key := "files:" + sha
	if v, ok, err := c.get(key); ok {
		return v.([]DiffFile), err
	}
	v, err := c.inner.CommitFiles(sha)
	c.set(key, v, err)
	return v, err
}

// ReviewComments returns the diff-anchored comments (cached).
func (c *CachedService) ReviewComments() ([]ReviewComment, error) {
	if v, ok, err := c.get("reviewcomments"); ok {
		return v.([]ReviewComment), err
	}
	v, err := c.inner.ReviewComments()
	c.set("reviewcomments", v, err)
	return v, err
}

// IssueComments returns the conversation comments (cached).
func (c *CachedService) IssueComments() ([]IssueComment, error) {
	if v, ok, err := c.get("issuecomments"); ok {
		return v.([]IssueComment), err
	}
	v, err := c.inner.IssueComments()
	c.set("issuecomments", v, err)
	return v, err
}

// Reviews returns the submitted reviews (cached).
func (c *CachedService) Reviews() ([]ReviewSummary, error) {
	if v, ok, err := c.get("reviews"); ok {
		return v.([]ReviewSummary), err
	}
	v, err := c.inner.Reviews()
	c.set("reviews", v, err)
	return v, err
}

// ReviewThreads returns the resolvable threads (cached).
func (c *CachedService) ReviewThreads() ([]ReviewThread, error) {
	if v, ok, err := c.get("threads"); ok {
		return v.([]ReviewThread), err
	}
	v, err := c.inner.ReviewThreads()
	c.set("threads", v, err)
	return v, err
}

// ── Writes (invalidate cache) ───────────────────────────────────────────────

// SubmitReview submits the review and invalidates the cache.
func (c *CachedService) SubmitReview(req *ReviewRequest) error {
	return c.invalidateAndReturn(c.inner.SubmitReview(req))
}

// PostIssueComment posts a comment and invalidates the cache.
func (c *CachedService) PostIssueComment(body string) (*IssueComment, error) {
	comment, err := c.inner.PostIssueComment(body)
	if err == nil {
		c.Invalidate()
	}
	return comment, err
}

// ResolveThread resolves a thread and invalidates the cache.
func (c *CachedService) ResolveThread(nodeID string) (bool, error) {
	resolved, err := c.inner.ResolveThread(nodeID)
	if err == nil {
		c.Invalidate()
	}
	return resolved, err
}

// UnresolveThread reopens a thread and invalidates the cache.
func (c *CachedService) UnresolveThread(nodeID string) (bool, error) {
	resolved, err := c.inner.UnresolveThread(nodeID)
	if err == nil {
		c.Invalidate()
	}
	return resolved, err
}
