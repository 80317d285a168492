package tasks

import (
	"context"
	"strings"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
)

type UpdateTaskInput struct {
	Owner domain.UserID
	ID    domain.TaskID
	Patch domain.TaskPatch
}

// UpdateTask applies an allow-listed partial update to a task owned by the
// caller. A task owned by someone else is reported as not found.
type UpdateTask struct {
	tasks ports.TaskRepository
}

func NewUpdateTask(tasks ports.TaskRepository) *UpdateTask {
	return &UpdateTask{tasks: tasks}
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if input.Patch.Title != nil {
		title := strings.TrimSpace(*input.Patch.Title)
		if title == "" {
			return nil, domerrors.ErrTitleRequired
		}
		input.Patch.Title = &title
	}
	return uc.tasks.Update(ctx, input.Owner, input.ID, input.Patch)
}
