package mock

import (
	"context"

	"github.com/pagesift/pagesift"
)

var _ pagesift.TaskService = (*TaskService)(nil)

// TaskService is a mock implementation of pagesift.TaskService.
type TaskService struct {
	CreateTaskFn   func(ctx context.Context, task *pagesift.Task) error
	UpdateTaskFn   func(ctx context.Context, id string, upd pagesift.TaskUpdate) (*pagesift.Task, error)
	FindTaskByIDFn func(ctx context.Context, id string) (*pagesift.Task, error)
	FindTasksFn    func(ctx context.Context) ([]*pagesift.Task, error)
}

func (s *TaskService) CreateTask(ctx context.Context, task *pagesift.Task) error {
	return s.CreateTaskFn(ctx, task)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, upd pagesift.TaskUpdate) (*pagesift.Task, error) {
	return s.UpdateTaskFn(ctx, id, upd)
}

func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*pagesift.Task, error) {
	return s.FindTaskByIDFn(ctx, id)
}

func (s *TaskService) FindTasks(ctx context.Context) ([]*pagesift.Task, error) {
	return s.FindTasksFn(ctx)
}
