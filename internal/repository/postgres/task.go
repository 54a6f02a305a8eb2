package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/taskvault/internal/dbx"
	"github.com/msomdec/taskvault/internal/domain"
)

// TaskRepository implements domain.TaskRepository using PostgreSQL.
type TaskRepository struct {
	db dbx.DBTX
}

func NewTaskRepository(db dbx.DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO tasks (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		task.UserID, task.Title, task.Description, string(task.Status),
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, status, created_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var (
			t           domain.Task
			description sql.NullString
			status      string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &description, &status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if description.Valid {
			t.Description = &description.String
		}
		t.Status = domain.TaskStatus(status)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) GetByOwner(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	var (
		t           domain.Task
		description sql.NullString
		status      string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, status, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`, id, ownerID,
	).Scan(&t.ID, &t.UserID, &t.Title, &description, &status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if description.Valid {
		t.Description = &description.String
	}
	t.Status = domain.TaskStatus(status)
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3
		 WHERE id = $4 AND user_id = $5`,
		task.Title, task.Description, string(task.Status), task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
