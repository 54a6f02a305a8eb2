package domain

import "errors"

// Error kinds. Every error surfaced to a caller wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
)

// Error pairs an error kind with the literal message shown to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError returns an Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrPasswordEmpty      = NewError(ErrInvalidInput, "Password cannot be empty")
	ErrUserExists         = NewError(ErrConflict, "User already exists")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "Invalid authentication credentials")
	ErrLoginFailed        = NewError(ErrUnauthorized, "Invalid email or password")
	ErrUserInactive       = NewError(ErrUnauthorized, "User is not active")
	ErrTitleEmpty         = NewError(ErrInvalidInput, "Title cannot be empty")
	ErrFieldEmpty         = NewError(ErrInvalidInput, "Field cannot be an empty string")
	ErrInvalidStatus      = NewError(ErrInvalidInput, "Status must be one of pending, in_progress, completed")
	ErrTaskNotFound       = NewError(ErrNotFound, "Task not found")
)
