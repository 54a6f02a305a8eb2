package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/taskvault/internal/domain"
)

func createTask(t *testing.T, repo domain.TaskRepository, ownerID int64, title string) *domain.Task {
	t.Helper()
	task := &domain.Task{UserID: ownerID, Title: title, Status: domain.TaskStatusPending}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create task %q: %v", title, err)
	}
	return task
}

func TestTaskRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	ctx := context.Background()

	desc := "write it down"
	task := &domain.Task{UserID: owner.ID, Title: "Plan", Description: &desc, Status: domain.TaskStatusPending}
	if err := db.Tasks().Create(ctx, task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID == 0 || task.CreatedAt.IsZero() {
		t.Fatalf("expected ID and CreatedAt to be set, got %+v", task)
	}

	got, err := db.Tasks().GetByOwner(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Title != "Plan" || got.Description == nil || *got.Description != desc {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.Status != domain.TaskStatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
}

func TestTaskRepository_NullDescription(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "nil@example.com")
	repo := db.Tasks()

	task := createTask(t, repo, owner.ID, "No description")

	got, err := db.Tasks().GetByOwner(context.Background(), owner.ID, task.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Description != nil {
		t.Fatalf("expected nil description, got %q", *got.Description)
	}
}

func TestTaskRepository_GetByOwner_OtherUser(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "a@example.com")
	intruder := createUser(t, db, "b@example.com")
	repo := db.Tasks()

	task := createTask(t, repo, owner.ID, "Private")

	_, err := db.Tasks().GetByOwner(context.Background(), intruder.ID, task.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign task, got %v", err)
	}
}

func TestTaskRepository_ListByOwner_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "list@example.com")
	other := createUser(t, db, "other@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	empty, err := db.Tasks().ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner (empty): %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	t1 := createTask(t, repo, owner.ID, "T1")
	t2 := createTask(t, repo, owner.ID, "T2")
	createTask(t, repo, other.ID, "Not mine")

	tasks, err := db.Tasks().ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != t2.ID || tasks[1].ID != t1.ID {
		t.Fatalf("expected [T2, T1], got [%s, %s]", tasks[0].Title, tasks[1].Title)
	}
}

func TestTaskRepository_Update(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "upd@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := createTask(t, repo, owner.ID, "Old")
	task.Title = "New"
	task.Status = domain.TaskStatusCompleted
	if err := db.Tasks().Update(ctx, task); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := db.Tasks().GetByOwner(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Title != "New" || got.Status != domain.TaskStatusCompleted {
		t.Fatalf("unexpected task after update: %+v", got)
	}
}

func TestTaskRepository_Update_OtherUser(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "o@example.com")
	intruder := createUser(t, db, "i@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := createTask(t, repo, owner.ID, "Mine")
	forged := *task
	forged.UserID = intruder.ID
	forged.Title = "Hijacked"

	if err := db.Tasks().Update(ctx, &forged); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := db.Tasks().GetByOwner(ctx, owner.ID, task.ID)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.Title != "Mine" {
		t.Fatalf("expected title unchanged, got %q", got.Title)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "del@example.com")
	intruder := createUser(t, db, "x@example.com")
	repo := db.Tasks()
	ctx := context.Background()

	task := createTask(t, repo, owner.ID, "Doomed")

	// A foreign delete is a silent no-op.
	if err := db.Tasks().Delete(ctx, intruder.ID, task.ID); err != nil {
		t.Fatalf("Delete (intruder): %v", err)
	}
	if _, err := db.Tasks().GetByOwner(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("expected task to survive foreign delete, got %v", err)
	}

	if err := db.Tasks().Delete(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Tasks().GetByOwner(ctx, owner.ID, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Idempotent.
	if err := db.Tasks().Delete(ctx, owner.ID, task.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}
