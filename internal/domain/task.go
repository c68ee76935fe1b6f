package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors.
var (
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrTaskTitleTooShort = errors.New("task title must be at least 3 characters long")
	ErrTaskTitleTooLong  = errors.New("task title must be at most 200 characters long")
	ErrEmptyTaskOwner    = errors.New("task owner cannot be empty")
)

// Task title length bounds.
const (
	TaskTitleMinLength = 3
	TaskTitleMaxLength = 200
)

// Task represents a single to-do item owned by exactly one user.
// The ID is assigned by the store on creation; OwnerID is set once from the
// authenticated caller and never mutated afterwards (ownership cannot be
// transferred).
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"is_completed"`
	DueDate     time.Time `json:"due_date"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task owned by ownerID.
// The ID is left at zero for the store to assign.
// Returns an error if validation fails.
func NewTask(title, description string, isCompleted bool, dueDate time.Time, ownerID uuid.UUID) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: description,
		IsCompleted: isCompleted,
		DueDate:     dueDate,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	switch {
	case t.Title == "":
		return ErrEmptyTaskTitle
	case len(t.Title) < TaskTitleMinLength:
		return ErrTaskTitleTooShort
	case len(t.Title) > TaskTitleMaxLength:
		return ErrTaskTitleTooLong
	}

	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	return nil
}
