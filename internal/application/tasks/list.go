package tasks

import (
	"context"

	"github.com/BaAEz/taskapp-Immersiveai/internal/application/ports"
	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
)

// ListTasks returns all tasks owned by the caller in store order.
type ListTasks struct {
	tasks ports.TaskRepository
}

func NewListTasks(tasks ports.TaskRepository) *ListTasks {
	return &ListTasks{tasks: tasks}
}

func (uc *ListTasks) Execute(ctx context.Context, owner domain.UserID) ([]*domain.Task, error) {
	list, err := uc.tasks.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*domain.Task{}
	}
	return list, nil
}
