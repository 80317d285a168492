package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BaAEz/taskapp-Immersiveai/internal/domain"
	domerrors "github.com/BaAEz/taskapp-Immersiveai/internal/domain/errors"
)

const (
	insertTaskSQL = `INSERT INTO tasks (id, owner_id, title, is_completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`
	listTasksByOwnerSQL = `SELECT id, owner_id, title, is_completed, created_at, updated_at FROM tasks
		 WHERE owner_id = $1
		 ORDER BY created_at, id`
	getOwnedTaskSQL = `SELECT id, owner_id, title, is_completed, created_at, updated_at FROM tasks
		 WHERE id = $1 AND owner_id = $2`
	deleteOwnedTaskSQL = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`
)

// TaskRepository implements ports.TaskRepository on a pgx pool. Every update
// and delete carries the owner in the WHERE clause, so ownership is enforced
// by the query itself and a foreign task is indistinguishable from a missing
// one.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	_, err := r.pool.Exec(ctx, insertTaskSQL,
		task.ID.UUID, task.OwnerID.UUID, task.Title, task.IsCompleted, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner domain.UserID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, listTasksByOwnerSQL, owner.UUID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var list []*domain.Task
	for rows.Next() {
		task := &domain.Task{}
		if err := rows.Scan(&task.ID.UUID, &task.OwnerID.UUID, &task.Title,
			&task.IsCompleted, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return list, nil
}

func (r *TaskRepository) Update(ctx context.Context, owner domain.UserID, id domain.TaskID, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		// Nothing to change; still confirm existence under this owner.
		return r.getOwned(ctx, owner, id)
	}

	setParts := []string{}
	args := []any{}
	if patch.Title != nil {
		args = append(args, *patch.Title)
		setParts = append(setParts, fmt.Sprintf("title = $%d", len(args)))
	}
	if patch.IsCompleted != nil {
		args = append(args, *patch.IsCompleted)
		setParts = append(setParts, fmt.Sprintf("is_completed = $%d", len(args)))
	}
	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id.UUID, owner.UUID)

	query := fmt.Sprintf(
		`UPDATE tasks SET %s WHERE id = $%d AND owner_id = $%d
		 RETURNING id, owner_id, title, is_completed, created_at, updated_at`,
		strings.Join(setParts, ", "), len(args)-1, len(args))

	task := &domain.Task{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(&task.ID.UUID, &task.OwnerID.UUID,
		&task.Title, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domerrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, owner domain.UserID, id domain.TaskID) error {
	tag, err := r.pool.Exec(ctx, deleteOwnedTaskSQL, id.UUID, owner.UUID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domerrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) getOwned(ctx context.Context, owner domain.UserID, id domain.TaskID) (*domain.Task, error) {
	task := &domain.Task{}
	err := r.pool.QueryRow(ctx, getOwnedTaskSQL, id.UUID, owner.UUID).Scan(&task.ID.UUID,
		&task.OwnerID.UUID, &task.Title, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domerrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("query task: %w", err)
	}
	return task, nil
}
