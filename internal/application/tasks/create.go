package tasks

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
)

type CreateTaskInput struct {
	Owner domain.UserID
	Title string
}

// CreateTask creates a task owned by the caller, not completed.
type CreateTask struct {
	tasks ports.TaskRepository
}

func NewCreateTask(tasks ports.TaskRepository) *CreateTask {
	return &CreateTask{tasks: tasks}
}

func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domerrors.ErrTitleRequired
	}
	now := time.Now()
	task := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		OwnerID:     input.Owner,
		Title:       title,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
