package tasks

import (
	"context"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
)

// DeleteTask removes a task owned by the caller. Deleting a task that does
// not exist, or that belongs to someone else, is reported as not found.
type DeleteTask struct {
	tasks ports.TaskRepository
}

func NewDeleteTask(tasks ports.TaskRepository) *DeleteTask {
	return &DeleteTask{tasks: tasks}
}

func (uc *DeleteTask) Execute(ctx context.Context, owner domain.UserID, id domain.TaskID) error {
	return uc.tasks.Delete(ctx, owner, id)
}
