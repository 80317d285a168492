package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a TaskID from a uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// Task is owned by exactly one user. Every read and mutation is filtered by
// OwnerID at the query level, so a task is invisible to everyone but its owner.
type Task struct {
	ID          TaskID
	OwnerID     UserID
	Title       string
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch is the allow-listed partial update for a task. Nil fields are
// left untouched. Only title and completion state are client-writable.
type TaskPatch struct {
	Title       *string
	IsCompleted *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool { return p.Title == nil && p.IsCompleted == nil }
