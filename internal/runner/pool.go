// Package runner drives a bounded pool of concurrent probe tasks to
// completion with per-task timeouts and cooperative cancellation, the task
// queue runner internal/hoststrategy's internal scanner drives its
// internal/probe scanners through.
package runner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	hserrors "github.com/netreveal/hostscan/internal/errors"
	"github.com/netreveal/hostscan/internal/logging"
)

// Task is one unit of scan work submitted to the pool. It receives a
// context already carrying its own deadline and must honor ctx.Done()
// between the blocking steps it performs (connect, send, receive).
type Task func(ctx context.Context) error

// job pairs a submitted Task with the identity the runner tracks it by.
type job struct {
	id   uuid.UUID
	task Task
}

// Result reports the outcome of one submitted Task.
type Result struct {
	ID    uuid.UUID
	Err   error
	Start time.Time
	End   time.Time
}

// Pool is a bounded worker pool: up to N tasks run concurrently, each
// wrapped with its own timeout, cancellable as a batch through the context
// passed to Run.
type Pool struct {
	workers int
	timeout time.Duration
}

// New creates a Pool with the given worker count and per-task timeout.
func New(workers int, timeout time.Duration) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, timeout: timeout}
}

// Run submits tasks to the pool and blocks until every one of them has
// completed or ctx has been canceled. Cancellation is cooperative: a
// canceled ctx stops new tasks from starting and causes in-flight tasks
// whose Task closures check ctx.Done() to short-circuit; the runner itself
// never kills a goroutine mid-flight. Results are returned in the same
// order as tasks, regardless of completion order.
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	jobs := make(chan int, len(tasks))
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			results[idx] = p.runOne(ctx, tasks[idx])
		}
	}

	n := p.workers
	if n > len(tasks) {
		n = len(tasks)
	}
	wg.Add(n)
	for i := 0; i < n; i++ {
		go worker()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (p *Pool) runOne(parent context.Context, task Task) Result {
	id := uuid.New()
	res := Result{ID: id, Start: time.Now()}

	if parent.Err() != nil {
		res.Err = hserrors.Wrap(hserrors.CodeCanceled, "scan canceled before task started", parent.Err()).WithContext("task_id", id.String())
		res.End = time.Now()
		return res
	}

	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	logging.Debug("probe task starting", "task_id", id.String())
	err := task(ctx)
	res.End = time.Now()

	if err != nil {
		res.Err = err
		logging.ErrorProbe("probe task failed", "", err, "task_id", id.String())
	}
	return res
}
