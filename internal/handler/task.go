package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/msomdec/taskvault/internal/domain"
	"github.com/msomdec/taskvault/internal/service"
)

// TaskHandler serves the caller's tasks. Each request resolves the caller
// and performs its work inside a single transaction; the response is written
// only after that transaction has committed.
type TaskHandler struct {
	store    domain.Store
	resolver *service.IdentityResolver
	tasks    *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(store domain.Store, resolver *service.IdentityResolver, tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{store: store, resolver: resolver, tasks: tasks}
}

// withOwner runs fn in one transaction on behalf of the resolved caller.
// The caller is resolved before fn runs, so fn may read the request body.
func (h *TaskHandler) withOwner(r *http.Request, fn func(ctx context.Context, sess domain.Session, owner *domain.User) error) error {
	return h.store.WithinTx(r.Context(), func(ctx context.Context, sess domain.Session) error {
		owner, err := h.resolver.Resolve(ctx, sess, TokenFromContext(ctx))
		if err != nil {
			return err
		}
		return fn(ctx, sess, owner)
	})
}

// taskID parses the {id} path value. Anything that is not an integer is
// reported exactly like a missing task.
func taskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrTaskNotFound
	}
	return id, nil
}

type taskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (req taskRequest) status() *domain.TaskStatus {
	if req.Status == nil {
		return nil
	}
	s := domain.TaskStatus(*req.Status)
	return &s
}

// HandleCreate creates a task owned by the caller.
// POST /tasks
// Request:  {"title":"...","description":"...","status":"pending"}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var task *domain.Task
	err := h.withOwner(r, func(ctx context.Context, sess domain.Session, owner *domain.User) error {
		var req taskRequest
		if err := readJSON(w, r, &req); err != nil {
			return errInvalidBody
		}
		in := service.TaskInput{Description: req.Description, Status: req.status()}
		if req.Title != nil {
			in.Title = *req.Title
		}

		var err error
		task, err = h.tasks.Create(ctx, sess, owner.ID, in)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleList returns the caller's tasks, newest first.
// GET /tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var tasks []domain.Task
	err := h.withOwner(r, func(ctx context.Context, sess domain.Session, owner *domain.User) error {
		var err error
		tasks, err = h.tasks.List(ctx, sess, owner.ID)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTOs(tasks))
}

// HandleGet returns one of the caller's tasks.
// GET /tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var task *domain.Task
	err := h.withOwner(r, func(ctx context.Context, sess domain.Session, owner *domain.User) error {
		id, err := taskID(r)
		if err != nil {
			return err
		}
		task, err = h.tasks.Get(ctx, sess, owner.ID, id)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleUpdate applies a partial update to one of the caller's tasks.
// PUT /tasks/{id}
// Request: any subset of {"title","description","status"}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var task *domain.Task
	err := h.withOwner(r, func(ctx context.Context, sess domain.Session, owner *domain.User) error {
		id, err := taskID(r)
		if err != nil {
			return err
		}
		var req taskRequest
		if err := readJSON(w, r, &req); err != nil {
			return errInvalidBody
		}
		patch := domain.TaskPatch{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.status(),
		}

		task, err = h.tasks.Update(ctx, sess, owner.ID, id, patch)
		return err
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskDTO(task))
}

// HandleDelete removes one of the caller's tasks.
// DELETE /tasks/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.withOwner(r, func(ctx context.Context, sess domain.Session, owner *domain.User) error {
		id, err := taskID(r)
		if err != nil {
			return err
		}
		return h.tasks.Delete(ctx, sess, owner.ID, id)
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageDTO{Message: "Task deleted successfully"})
}
