package api

import "time"

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`

	// Token is the signed JWT used for API authorization.
	Token string `json:"token"`
}

// CreateTaskRequest defines the payload for creating a task.
// There is no owner field: ownership always derives from the bearer token.
type CreateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	DueDate     time.Time `json:"dueDate"     validate:"required"`
}

// UpdateTaskRequest defines the payload for replacing a task's mutable
// fields. Identical shape to CreateTaskRequest; the owner remains immutable.
type UpdateTaskRequest struct {
	Title       string    `json:"title"       validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	DueDate     time.Time `json:"dueDate"     validate:"required"`
}

// ValidationErrorResponse reports a 400 with per-field messages.
type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
}
