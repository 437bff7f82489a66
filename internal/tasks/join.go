package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/ytbak/internal/shared"
)

// Outcome is the terminal status of a backup run.
type Outcome int

const (
	AllComplete Outcome = iota
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case AllComplete:
		return "all_complete"
	case TimedOut:
		return "timed_out"
	}
	return ""
}

// JobSummary is one job's contribution to the run result.
type JobSummary struct {
	Title      string
	ItemsCount int
	File       string
}

// joinState gathers per-job completion reports and resolves exactly once:
// either every expected job reported, or the deadline passed first.
//
// Failed jobs never call complete, so a run with a failed job resolves
// TimedOut. Jobs that finish after resolution still append their summaries,
// but the resolved snapshot is no longer re-read.
type joinState struct {
	expected int

	mu        sync.Mutex
	summaries []JobSummary
	resolved  bool
	done      chan struct{}
}

func newJoinState(expected int) *joinState {
	return &joinState{
		expected:  expected,
		summaries: make([]JobSummary, 0, expected),
		done:      make(chan struct{}),
	}
}

// complete records a finished job in completion order. The done channel
// closes when the last expected job reports.
func (j *joinState) complete(summary JobSummary) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.summaries = append(j.summaries, summary)
	if len(j.summaries) == j.expected && !j.resolved {
		j.resolved = true
		close(j.done)
	}
	return len(j.summaries)
}

// wait blocks until all expected jobs report, the timeout elapses, or ctx is
// cancelled. A zero expected count resolves immediately.
func (j *joinState) wait(ctx context.Context, timeout time.Duration) (Outcome, error) {
	if j.expected == 0 {
		return AllComplete, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-j.done:
		return AllComplete, nil
	case <-timer.C:
		return TimedOut, fmt.Errorf("%w: %d of %d backups completed within %s",
			shared.ErrTimeout, j.count(), j.expected, timeout)
	case <-ctx.Done():
		return TimedOut, ctx.Err()
	}
}

func (j *joinState) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.summaries)
}

// snapshot copies the summaries recorded so far, in completion order.
func (j *joinState) snapshot() []JobSummary {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]JobSummary, len(j.summaries))
	copy(out, j.summaries)
	return out
}
