package workqueue

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/harmonyhq/harmony-engine/pkg/llm"
)

// RetryConfig configures retry behavior for failed tasks.
type RetryConfig struct {
	MaxRetries     int           // 0 means no retries
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
}

// DefaultRetryConfig returns the retry schedule used in production:
// 2s, 4s, 8s, then 15s (capped) for the remaining attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     15 * time.Second,
		BackoffFactor:  2.0,
	}
}

// maxHistory caps how many terminal task snapshots the queue retains. The
// queue lives for the whole process, so finished tasks are archived into a
// bounded window instead of accumulating forever.
const maxHistory = 256

// Queue runs tasks with a bounded number of concurrent workers. Transient
// provider errors (per llm.IsRetryable) are retried with exponential
// backoff; everything else fails the task immediately. Only pending and
// running tasks are held live; terminal tasks are pruned into a bounded
// snapshot history plus lifetime counters.
type Queue struct {
	mu        sync.Mutex
	tasks     []*taskState // pending and running only
	history   []TaskSnapshot
	running   int
	cancelled bool

	completedCount int
	failedCount    int
	cancelledCount int

	// batchErr is the first failure since the queue last drained. Wait
	// reports it; the next Enqueue after a drain clears it.
	batchErr error

	maxConcurrent int
	retryConfig   RetryConfig

	// done is closed when all tasks reach a terminal state
	done chan struct{}
	wg   sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	logger *zap.Logger
}

// QueueOption configures a Queue.
type QueueOption func(*Queue)

// WithMaxConcurrent caps the number of tasks running at once.
func WithMaxConcurrent(n int) QueueOption {
	return func(q *Queue) {
		if n > 0 {
			q.maxConcurrent = n
		}
	}
}

// WithRetryConfig sets the retry configuration.
func WithRetryConfig(config RetryConfig) QueueOption {
	return func(q *Queue) {
		q.retryConfig = config
	}
}

// New creates a new work queue. Defaults: 4 concurrent workers, the
// DefaultRetryConfig schedule.
func New(logger *zap.Logger, opts ...QueueOption) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		tasks:         make([]*taskState, 0),
		maxConcurrent: 4,
		retryConfig:   DefaultRetryConfig(),
		done:          make(chan struct{}),
		ctx:           ctx,
		cancel:        cancel,
		logger:        logger.Named("workqueue"),
	}

	for _, opt := range opts {
		opt(q)
	}

	return q
}

// Enqueue adds a task and starts it when a worker slot is free.
func (q *Queue) Enqueue(task Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cancelled {
		q.logger.Warn("queue cancelled, ignoring enqueue",
			zap.String("task_id", task.ID()),
			zap.String("task_name", task.Name()))
		return
	}

	q.resetDoneLocked()

	state := newTaskState(task)
	q.tasks = append(q.tasks, state)

	q.logger.Info("task enqueued",
		zap.String("task_id", task.ID()),
		zap.String("task_name", task.Name()))

	q.tryStartTasksLocked()
}

// tryStartTasksLocked starts pending tasks while worker slots remain.
// Must be called with lock held.
func (q *Queue) tryStartTasksLocked() {
	if q.cancelled {
		return
	}

	for _, ts := range q.tasks {
		if q.running >= q.maxConcurrent {
			return
		}
		if ts.getStatus() != TaskStatusPending {
			continue
		}

		q.running++
		ts.setStatus(TaskStatusRunning)

		q.logger.Info("starting task",
			zap.String("task_id", ts.task.ID()),
			zap.String("task_name", ts.task.Name()))

		q.wg.Add(1)
		go q.runTask(ts)
	}
}

// runTask executes a task with retry on transient errors.
func (q *Queue) runTask(ts *taskState) {
	defer q.wg.Done()

	var lastErr error

	for attempt := 0; attempt <= q.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := q.calculateBackoff(attempt)
			q.logger.Info("retrying task after backoff",
				zap.String("task_id", ts.task.ID()),
				zap.String("task_name", ts.task.Name()),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))

			select {
			case <-q.ctx.Done():
				q.completeTask(ts, q.ctx.Err())
				return
			case <-time.After(backoff):
			}
		}

		err := ts.task.Execute(q.ctx, q)
		if err == nil {
			q.completeTask(ts, nil)
			return
		}

		lastErr = err

		if errors.Is(err, context.Canceled) {
			break
		}

		if !llm.IsRetryable(err) {
			q.logger.Warn("non-retryable error, failing task immediately",
				zap.String("task_id", ts.task.ID()),
				zap.String("task_name", ts.task.Name()),
				zap.Error(err))
			break
		}

		retries := ts.incrementRetries()
		if attempt >= q.retryConfig.MaxRetries {
			q.logger.Error("task failed after max retries",
				zap.String("task_id", ts.task.ID()),
				zap.String("task_name", ts.task.Name()),
				zap.Int("retries", retries),
				zap.Error(err))
			break
		}
	}

	q.completeTask(ts, lastErr)
}

// calculateBackoff computes exponential backoff with ±10% jitter.
func (q *Queue) calculateBackoff(attempt int) time.Duration {
	backoff := float64(q.retryConfig.InitialBackoff) *
		math.Pow(q.retryConfig.BackoffFactor, float64(attempt-1))

	if backoff > float64(q.retryConfig.MaxBackoff) {
		backoff = float64(q.retryConfig.MaxBackoff)
	}

	jitter := backoff * 0.1 * (rand.Float64()*2 - 1)
	return time.Duration(backoff + jitter)
}

// completeTask moves a task to its terminal state and starts any waiting
// tasks.
func (q *Queue) completeTask(ts *taskState, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.running--

	switch {
	case err == nil:
		ts.setStatus(TaskStatusCompleted)
		q.logger.Info("task completed",
			zap.String("task_id", ts.task.ID()),
			zap.String("task_name", ts.task.Name()))
	case errors.Is(err, context.Canceled):
		ts.setStatus(TaskStatusCancelled)
		q.logger.Info("task cancelled",
			zap.String("task_id", ts.task.ID()),
			zap.String("task_name", ts.task.Name()))
	default:
		ts.setStatus(TaskStatusFailed)
		ts.setError(err)
		if q.batchErr == nil {
			q.batchErr = err
		}
		q.logger.Error("task failed",
			zap.String("task_id", ts.task.ID()),
			zap.String("task_name", ts.task.Name()),
			zap.Error(err))
	}

	q.removeTaskLocked(ts)
	q.archiveLocked(ts)

	if len(q.tasks) == 0 {
		q.closeDoneLocked()
		return
	}

	q.tryStartTasksLocked()
}

// removeTaskLocked drops a task from the live slice. Must be called with
// lock held.
func (q *Queue) removeTaskLocked(ts *taskState) {
	for i, cur := range q.tasks {
		if cur == ts {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}

// archiveLocked records a terminal task in the bounded history and bumps
// the lifetime counters. Must be called with lock held.
func (q *Queue) archiveLocked(ts *taskState) {
	q.history = append(q.history, ts.snapshot())
	if len(q.history) > maxHistory {
		q.history = q.history[len(q.history)-maxHistory:]
	}

	switch ts.getStatus() {
	case TaskStatusCompleted:
		q.completedCount++
	case TaskStatusFailed:
		q.failedCount++
	case TaskStatusCancelled:
		q.cancelledCount++
	}
}

// closeDoneLocked safely closes the done channel. Must be called with lock
// held.
func (q *Queue) closeDoneLocked() {
	select {
	case <-q.done:
	default:
		close(q.done)
	}
}

// resetDoneLocked recreates the done channel after a drained batch so the
// queue can accept further work, and clears the previous batch's failure.
// Must be called with lock held.
func (q *Queue) resetDoneLocked() {
	select {
	case <-q.done:
		q.done = make(chan struct{})
		q.batchErr = nil
	default:
	}
}

// GetTasks returns snapshots of the retained terminal history followed by
// all live tasks.
func (q *Queue) GetTasks() []TaskSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshots := make([]TaskSnapshot, 0, len(q.history)+len(q.tasks))
	snapshots = append(snapshots, q.history...)
	for _, ts := range q.tasks {
		snapshots = append(snapshots, ts.snapshot())
	}
	return snapshots
}

// Wait blocks until all tasks reach a terminal state or the context is
// cancelled. Returns the first task error of the current batch, if any.
func (q *Queue) Wait(ctx context.Context) error {
	q.mu.Lock()
	if len(q.tasks) == 0 {
		err := q.batchErr
		q.mu.Unlock()
		return err
	}
	done := q.done
	q.mu.Unlock()

	select {
	case <-done:
		q.mu.Lock()
		defer q.mu.Unlock()
		return q.batchErr
	case <-ctx.Done():
		q.Cancel()
		return ctx.Err()
	}
}

// Cancel stops accepting new tasks and signals running tasks to stop.
func (q *Queue) Cancel() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.cancelled {
		return
	}

	q.cancelled = true
	q.logger.Info("queue cancelled, signaling running tasks to stop")
	q.cancel()

	remaining := q.tasks[:0]
	for _, ts := range q.tasks {
		if ts.getStatus() == TaskStatusPending {
			ts.setStatus(TaskStatusCancelled)
			q.archiveLocked(ts)
			continue
		}
		remaining = append(remaining, ts)
	}
	q.tasks = remaining

	if len(q.tasks) == 0 {
		q.closeDoneLocked()
	}
}

// HasFailures reports whether any task has failed over the queue's lifetime.
func (q *Queue) HasFailures() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.failedCount > 0
}

// Progress returns a progress summary. Terminal counts cover the queue's
// whole lifetime, not just the retained history window.
func (q *Queue) Progress() Progress {
	q.mu.Lock()
	defer q.mu.Unlock()

	p := Progress{
		Completed: q.completedCount,
		Failed:    q.failedCount,
		Cancelled: q.cancelledCount,
	}
	for _, ts := range q.tasks {
		switch ts.getStatus() {
		case TaskStatusPending:
			p.Pending++
		case TaskStatusRunning:
			p.Running++
		}
	}
	p.Total = p.Pending + p.Running + p.Completed + p.Failed + p.Cancelled
	return p
}

// Progress holds queue progress statistics.
type Progress struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Cancelled int `json:"cancelled"`
}
