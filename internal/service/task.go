package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/msomdec/taskvault/internal/domain"
)

// TaskInput holds the fields accepted when creating a task.
type TaskInput struct {
	Title       string
	Description *string
	// Status defaults to pending when nil.
	Status *domain.TaskStatus
}

// TaskService implements owner-scoped task operations. Every method takes the
// owner id resolved from the caller's token; there is no unscoped access.
type TaskService struct{}

// NewTaskService creates a new TaskService.
func NewTaskService() *TaskService {
	return &TaskService{}
}

func (s *TaskService) Create(ctx context.Context, sess domain.Session, ownerID int64, in TaskInput) (*domain.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrTitleEmpty
	}

	status := domain.TaskStatusPending
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		status = *in.Status
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
	}
	if err := sess.Tasks().Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns the owner's tasks, newest first. The result is never nil.
func (s *TaskService) List(ctx context.Context, sess domain.Session, ownerID int64) ([]domain.Task, error) {
	tasks, err := sess.Tasks().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// Get returns a task only if it belongs to ownerID. A task owned by someone
// else is reported as domain.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, sess domain.Session, ownerID, taskID int64) (*domain.Task, error) {
	task, err := sess.Tasks().GetByOwner(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Update applies the present fields of patch and returns the stored row.
// The patch is fully validated before anything is written.
func (s *TaskService) Update(ctx context.Context, sess domain.Session, ownerID, taskID int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, domain.ErrFieldEmpty
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task, err := s.Get(ctx, sess, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = patch.Description
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	if err := sess.Tasks().Update(ctx, task); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return s.Get(ctx, sess, ownerID, taskID)
}

// Delete removes the owner's task.
func (s *TaskService) Delete(ctx context.Context, sess domain.Session, ownerID, taskID int64) error {
	if _, err := s.Get(ctx, sess, ownerID, taskID); err != nil {
		return err
	}
	if err := sess.Tasks().Delete(ctx, ownerID, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
