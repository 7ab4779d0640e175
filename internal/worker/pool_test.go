package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	counter *atomic.Int64
}

type testResult struct {
	id  int
	err error
}

func (r testResult) GetError() error { return r.err }

func (j testJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return testResult{id: j.id}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(4)
	pool.Start()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(testJob{id: i, counter: &counter})
	}

	results := pool.Wait()

	if len(results) != jobs {
		t.Errorf("got %d results, want %d", len(results), jobs)
	}
	if counter.Load() != jobs {
		t.Errorf("executed %d jobs, want %d", counter.Load(), jobs)
	}

	seen := make(map[int]bool)
	for _, r := range results {
		tr, ok := r.(testResult)
		if !ok {
			t.Fatalf("unexpected result type %T", r)
		}
		if seen[tr.id] {
			t.Errorf("job %d reported twice", tr.id)
		}
		seen[tr.id] = true
	}
}

func TestPool_ZeroWorkersClamped(t *testing.T) {
	var counter atomic.Int64

	pool := NewPool(0)
	pool.Start()
	pool.Submit(testJob{id: 1, counter: &counter})

	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

type slowJob struct{}

func (slowJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return testResult{err: ctx.Err()}
	case <-time.After(5 * time.Second):
		return testResult{}
	}
}

func TestPool_ShutdownCancelsJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Submit(slowJob{})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after context cancellation")
	}
}

func TestDomainLimiter_SameHostShared(t *testing.T) {
	l := NewDomainLimiter(100, 1)

	a := l.limiterFor("https://example.gov/a")
	b := l.limiterFor("https://example.gov/b")
	c := l.limiterFor("https://other.gov/a")

	if a != b {
		t.Error("same host must share a limiter")
	}
	if a == c {
		t.Error("different hosts must not share a limiter")
	}
}

func TestDomainLimiter_WaitHonorsContext(t *testing.T) {
	// Burst 1 at a very low rate: the second Wait must block until the
	// context expires
	l := NewDomainLimiter(0.001, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://example.gov/a"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	if err := l.Wait(ctx, "https://example.gov/a"); err == nil {
		t.Error("second Wait should fail once the context deadline passes")
	}
}
