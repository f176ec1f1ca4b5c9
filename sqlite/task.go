package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pagesift/pagesift"
)

// Compile-time interface verification.
var _ pagesift.TaskService = (*TaskService)(nil)

// TaskService implements pagesift.TaskService using SQLite.
type TaskService struct {
	db *DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask creates a new task in pending state and assigns its ID.
func (s *TaskService) CreateTask(ctx context.Context, task *pagesift.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	task.ID = uuid.New().String()
	task.Status = pagesift.TaskPending
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, start_url, max_pages, status, progress, strategy, count, result_sum, error, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.StartURL, task.MaxPages, task.Status, task.Progress,
		string(task.Strategy), task.Count, task.ResultSum, task.Error,
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindTaskByID retrieves a task by ID.
func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*pagesift.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, start_url, max_pages, status, progress, strategy, count, result_sum, error, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)

	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, pagesift.Errorf(pagesift.ENOTFOUND, "task not found")
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

// FindTasks retrieves all tasks, most recently created first.
func (s *TaskService) FindTasks(ctx context.Context) ([]*pagesift.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, start_url, max_pages, status, progress, strategy, count, result_sum, error, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*pagesift.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// UpdateTask applies the update to an existing task.
func (s *TaskService) UpdateTask(ctx context.Context, id string, upd pagesift.TaskUpdate) (*pagesift.Task, error) {
	task, err := s.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		task.Status = *upd.Status
	}
	if upd.Progress != nil {
		task.Progress = *upd.Progress
	}
	if upd.Strategy != nil {
		task.Strategy = *upd.Strategy
	}
	if upd.Count != nil {
		task.Count = *upd.Count
	}
	if upd.ResultSum != nil {
		task.ResultSum = *upd.ResultSum
	}
	if upd.Error != nil {
		task.Error = *upd.Error
	}

	task.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks
		SET status = ?, progress = ?, strategy = ?, count = ?, result_sum = ?, error = ?, updated_at = ?
		WHERE id = ?
	`, task.Status, task.Progress, string(task.Strategy), task.Count, task.ResultSum, task.Error,
		task.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask permanently removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagesift.Errorf(pagesift.ENOTFOUND, "task not found")
	}

	return nil
}

// scanTask scans a task row using the given scan function.
func scanTask(scan func(dest ...any) error) (*pagesift.Task, error) {
	var task pagesift.Task
	var strategy, createdAt, updatedAt string

	if err := scan(&task.ID, &task.StartURL, &task.MaxPages, &task.Status, &task.Progress,
		&strategy, &task.Count, &task.ResultSum, &task.Error, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	task.Strategy = pagesift.Strategy(strategy)

	var parseErr error
	task.CreatedAt, parseErr = parseRFC3339(createdAt, "created_at")
	if parseErr != nil {
		return nil, parseErr
	}
	task.UpdatedAt, parseErr = parseRFC3339(updatedAt, "updated_at")
	if parseErr != nil {
		return nil, parseErr
	}

	return &task, nil
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}
