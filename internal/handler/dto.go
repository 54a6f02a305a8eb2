package handler

import (
	"time"

	"github.com/msomdec/taskvault/internal/domain"
)

// UserDTO is the public JSON representation of a user. The password hash is
// never exposed.
type UserDTO struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}

// TaskDTO is the JSON representation of a task.
type TaskDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	UserID      int64   `json:"user_id"`
	CreatedAt   string  `json:"created_at"`
}

func toTaskDTO(t *domain.Task) TaskDTO {
	return TaskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toTaskDTOs(tasks []domain.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = toTaskDTO(&tasks[i])
	}
	return dtos
}

// TokenDTO is returned by a successful login.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageDTO carries a human-readable confirmation.
type MessageDTO struct {
	Message string `json:"message"`
}
