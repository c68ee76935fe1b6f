package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-api/internal/domain"
)

// Pagination defaults and bounds for task listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Task sort keys accepted by TaskQuery.SortBy. Anything else falls back to
// the store's natural order (primary key).
const (
	TaskSortByTitle   = "title"
	TaskSortByDueDate = "due_date"
)

// TaskQuery is the ephemeral filter/sort/page specification for a single
// list request. It is never persisted.
//
// OwnerID is mandatory in practice: the task service overwrites it with the
// authenticated caller's ID before the query reaches the store, so a listing
// can never cross user boundaries.
type TaskQuery struct {
	OwnerID        uuid.UUID
	Title          string // substring match on title; empty means no filter
	SortBy         string // TaskSortByTitle or TaskSortByDueDate; empty means natural order
	SortDescending bool
	PageNumber     int // 1-based
	PageSize       int
}

// Normalize clamps pagination parameters into a valid range.
// Page numbers below 1 become 1, non-positive page sizes fall back to
// DefaultPageSize, and oversized pages are capped at MaxPageSize. The
// clamping choice (rather than rejection) keeps list requests total: a
// sloppy client gets the first page instead of an error.
func (q *TaskQuery) Normalize() {
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

// Offset returns the number of records to skip for the current page.
// Call Normalize first; a normalized query never yields a negative offset.
func (q *TaskQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// TaskStore defines the interface for task data persistence.
// All operations are direct pass-throughs to the backing relational engine;
// there is no caching or batching, and concurrent updates to the same task
// resolve last-write-wins at the row level.
type TaskStore interface {
	// List retrieves tasks matching the query: owner filter AND title
	// substring filter (when set), single-key sort with id as the stable
	// tie-break, and offset/limit pagination. Returns an empty slice when
	// nothing matches - never an error for "no results".
	List(ctx context.Context, query TaskQuery) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Create persists a new task and fills in its store-assigned ID.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces the mutable fields (title, description, is_completed,
	// due_date) of an existing task. The owner column is never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete physically removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a task with the given ID is present.
	Exists(ctx context.Context, id int64) (bool, error)
}
