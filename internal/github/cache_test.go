package github

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingService records how many times each read hits the backend.
type countingService struct {
	CLIService
	prCalls     int
	filesCalls  int
	submitCalls int
}

func (m *countingService) PullRequest() (*PullRequest, error) {
	m.prCalls++
	return &PullRequest{Number: 1, Title: "cached"}, nil
}

func (m *countingService) CommitFiles(sha string) ([]DiffFile, error) {
	m.filesCalls++
	return []DiffFile{{Filename: sha + ".go"}}, nil
}

func (m *countingService) SubmitReview(*ReviewRequest) error {
	m.submitCalls++
	return nil
}

func TestCachedServiceCachesReads(t *testing.T) {
	mock := &countingService{}
	svc := NewCachedService(mock, time.Minute)

	for i := 0; i < 3; i++ {
		pr, err := svc.PullRequest()
		require.NoError(t, err)
		assert.Equal(t, "cached", pr.Title)
	}
	assert.Equal(t, 1, mock.prCalls)
}

func TestCachedServiceKeysFilesBySHA(t *testing.T) {
	mock := &countingService{}
	svc := NewCachedService(mock, time.Minute)

	a, err := svc.CommitFiles("aaa")
	require.NoError(t, err)
	b, err := svc.CommitFiles("bbb")
	require.NoError(t, err)
	_, err = svc.CommitFiles("aaa")
	require.NoError(t, err)

	assert.Equal(t, 2, mock.filesCalls)
	assert.Equal(t, "aaa.go", a[0].Filename)
	assert.Equal(t, "bbb.go", b[0].Filename)
}

func TestCachedServiceWriteInvalidates(t *testing.T) {
	mock := &countingService{}
	svc := NewCachedService(mock, time.Minute)

	_, err := svc.PullRequest()
	require.NoError(t, err)
	require.NoError(t, svc.SubmitReview(&ReviewRequest{}))
	_, err = svc.PullRequest()
	require.NoError(t, err)

	assert.Equal(t, 1, mock.submitCalls)
	assert.Equal(t, 2, mock.prCalls, "the write flushed the cached read")
}

func TestCachedServiceTTLExpiry(t *testing.T) {
	mock := &countingService{}
	svc := NewCachedService(mock, 10*time.Millisecond)

	_, err := svc.PullRequest()
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	_, err = svc.PullRequest()
	require.NoError(t, err)

	assert.Equal(t, 2, mock.prCalls)
}
