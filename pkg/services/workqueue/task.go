// Package workqueue runs background synthesis tasks with bounded
// concurrency and retry on transient provider errors.
package workqueue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Task is the interface all queue tasks implement.
type Task interface {
	// ID returns a unique identifier for this task.
	ID() string

	// Name returns a human-readable name for logs.
	Name() string

	// Execute runs the task. The enqueuer lets a task schedule follow-up
	// work, e.g. narration synthesis after a reading is stored.
	Execute(ctx context.Context, enqueuer TaskEnqueuer) error
}

// TaskEnqueuer allows tasks to enqueue follow-up tasks.
type TaskEnqueuer interface {
	Enqueue(task Task)
}

// taskState holds the runtime state of a task.
type taskState struct {
	task        Task
	status      TaskStatus
	startedAt   *time.Time
	completedAt *time.Time
	err         error
	retries     int

	mu sync.RWMutex
}

func newTaskState(task Task) *taskState {
	return &taskState{task: task, status: TaskStatusPending}
}

func (ts *taskState) getStatus() TaskStatus {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.status
}

func (ts *taskState) setStatus(status TaskStatus) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.status = status
	now := time.Now()
	switch status {
	case TaskStatusRunning:
		ts.startedAt = &now
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusCancelled:
		ts.completedAt = &now
	}
}

func (ts *taskState) setError(err error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.err = err
}

func (ts *taskState) getError() error {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.err
}

func (ts *taskState) incrementRetries() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.retries++
	return ts.retries
}

func (ts *taskState) snapshot() TaskSnapshot {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	var errMsg string
	if ts.err != nil {
		errMsg = ts.err.Error()
	}

	return TaskSnapshot{
		ID:          ts.task.ID(),
		Name:        ts.task.Name(),
		Status:      ts.status,
		Retries:     ts.retries,
		StartedAt:   ts.startedAt,
		CompletedAt: ts.completedAt,
		Error:       errMsg,
	}
}

// TaskSnapshot is an immutable view of task state for serialization.
type TaskSnapshot struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      TaskStatus `json:"status"`
	Retries     int        `json:"retries"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// BaseTask provides common task identity. Embed it in concrete tasks.
type BaseTask struct {
	id   string
	name string
}

// NewBaseTask creates a new base task with a fresh ID.
func NewBaseTask(name string) BaseTask {
	return BaseTask{id: uuid.New().String(), name: name}
}

// ID returns the task ID.
func (t BaseTask) ID() string {
	return t.id
}

// Name returns the task name.
func (t BaseTask) Name() string {
	return t.name
}
