package ports

import (
	"context"

	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
)

// UserRepository persists user accounts. GetByEmail and GetByID return
// (nil, nil) when no matching user exists.
type UserRepository interface {
	// Create stores a new user. Returns domain/errors.ErrEmailTaken when the
	// email unique index is violated.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// TaskRepository persists tasks. Update and Delete are owner-scoped at the
// query level: a task that exists but belongs to another user behaves exactly
// like a task that does not exist (domain/errors.ErrTaskNotFound).
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Task, error)
	Update(ctx context.Context, owner domain.UserID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, owner domain.UserID, id domain.TaskID) error
}
