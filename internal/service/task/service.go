// Package task implements the ownership-enforcing task service.
// Every read and mutation of a task record requires the caller's identity
// as an explicit parameter; there is no ambient identity lookup, so
// omitting the owner is a compile-time error rather than a runtime leak.
package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-api/internal/store"
)

// Common error types for the task service.
var (
	// ErrTaskNotFound is returned when a task does not exist OR is owned by
	// another user. The two cases are deliberately indistinguishable so the
	// service never confirms the existence of other users' records.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskData is the transfer shape of a task, distinct from the persisted
// domain entity. It is what handlers serialize to clients.
type TaskData struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	DueDate     time.Time `json:"dueDate"`
	OwnerID     string    `json:"ownerId"`
}

// TaskInput carries the client-suppliable fields for create and update.
// There is deliberately no owner field: ownership always comes from the
// authenticated caller, making an ownership transfer structurally
// impossible to request.
type TaskInput struct {
	Title       string
	Description string
	IsCompleted bool
	DueDate     time.Time
}

// Service provides ownership-scoped CRUD over tasks.
//
// Ownership contract: List forces the owner filter to the caller; Get,
// Update and Delete fetch-then-check and collapse "absent" and "not owned"
// into ErrTaskNotFound.
type Service interface {
	// List returns the caller's tasks matching the query. The query's
	// OwnerID is overwritten with ownerID regardless of any caller-supplied
	// value. An empty result is an empty slice, never an error.
	List(ctx context.Context, query store.TaskQuery, ownerID uuid.UUID) ([]TaskData, error)

	// Get returns the task with the given id if it is owned by ownerID.
	// Returns ErrTaskNotFound when the task is absent or owned by someone else.
	Get(ctx context.Context, id int64, ownerID uuid.UUID) (*TaskData, error)

	// Create persists a new task owned by ownerID and returns the created
	// transfer object with its store-assigned id.
	Create(ctx context.Context, input TaskInput, ownerID uuid.UUID) (*TaskData, error)

	// Update replaces the mutable fields of the task with the given id if
	// it is owned by ownerID. The owner field is immutable.
	// Returns ErrTaskNotFound when the task is absent or owned by someone else.
	Update(ctx context.Context, id int64, input TaskInput, ownerID uuid.UUID) (*TaskData, error)

	// Delete physically removes the task with the given id if it is owned
	// by ownerID. Returns ErrTaskNotFound uniformly when the task is absent
	// or owned by someone else; deleting twice yields ErrTaskNotFound on
	// the second call, never a panic or a store error.
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) error

	// Exists reports whether any task with the given id is present,
	// regardless of owner. It exposes no task data.
	Exists(ctx context.Context, id int64) (bool, error)
}
