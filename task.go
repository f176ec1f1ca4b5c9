package pagesift

import (
	"context"
	"time"
)

// Task statuses.
const (
	TaskPending   = "pending"
	TaskRunning   = "running"
	TaskCompleted = "completed"
	TaskFailed    = "failed"
)

// Task represents one crawl job and its bookkeeping.
type Task struct {
	ID        string    `json:"id"`
	StartURL  string    `json:"startUrl"`
	MaxPages  int       `json:"maxPages"`
	Status    string    `json:"status"`
	Progress  int       `json:"progress"` // 0..100
	Strategy  Strategy  `json:"strategy"`
	Count     int       `json:"count"`
	ResultSum string    `json:"resultSum"` // content hash of the serialized result
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the task contains invalid fields.
func (t *Task) Validate() error {
	if t.StartURL == "" {
		return Errorf(EINVALID, "task start URL required")
	}
	if t.MaxPages < 1 {
		return Errorf(EINVALID, "task page budget must be at least 1")
	}
	return nil
}

// TaskUpdate holds the mutable fields of a task. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Status    *string
	Progress  *int
	Strategy  *Strategy
	Count     *int
	ResultSum *string
	Error     *string
}

// TaskService manages persisted crawl tasks.
type TaskService interface {
	// CreateTask creates a new task in TaskPending state and assigns its ID.
	CreateTask(ctx context.Context, task *Task) error

	// UpdateTask applies the update to an existing task.
	// Returns ENOTFOUND if the task does not exist.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error)

	// FindTaskByID retrieves a task by ID.
	// Returns ENOTFOUND if the task does not exist.
	FindTaskByID(ctx context.Context, id string) (*Task, error)

	// FindTasks retrieves all tasks, most recently created first.
	FindTasks(ctx context.Context) ([]*Task, error)
}
