package domain

import (
	"context"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description *string
	Status      TaskStatus
	CreatedAt   time.Time
}

// TaskPatch holds the fields of an update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// TaskRepository defines owner-scoped persistence operations for tasks.
// Every lookup and mutation filters on both the task ID and the owner ID,
// so a task belonging to another user behaves exactly like a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Task, error)
	GetByOwner(ctx context.Context, ownerID, id int64) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, ownerID, id int64) error
}
