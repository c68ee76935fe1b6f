package task

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskhub/taskhub-api/internal/store"
)

// MockService is a configurable mock implementation of Service for testing.
// Each method delegates to the corresponding Fn field when set and returns
// zero values otherwise.
type MockService struct {
	ListFn   func(ctx context.Context, query store.TaskQuery, ownerID uuid.UUID) ([]TaskData, error)
	GetFn    func(ctx context.Context, id int64, ownerID uuid.UUID) (*TaskData, error)
	CreateFn func(ctx context.Context, input TaskInput, ownerID uuid.UUID) (*TaskData, error)
	UpdateFn func(ctx context.Context, id int64, input TaskInput, ownerID uuid.UUID) (*TaskData, error)
	DeleteFn func(ctx context.Context, id int64, ownerID uuid.UUID) error
	ExistsFn func(ctx context.Context, id int64) (bool, error)
}

// Ensure MockService implements Service interface
var _ Service = (*MockService)(nil)

// List implements Service.List.
func (m *MockService) List(ctx context.Context, query store.TaskQuery, ownerID uuid.UUID) ([]TaskData, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, query, ownerID)
	}
	return nil, nil
}

// Get implements Service.Get.
func (m *MockService) Get(ctx context.Context, id int64, ownerID uuid.UUID) (*TaskData, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id, ownerID)
	}
	return nil, ErrTaskNotFound
}

// Create implements Service.Create.
func (m *MockService) Create(ctx context.Context, input TaskInput, ownerID uuid.UUID) (*TaskData, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, ownerID)
	}
	return nil, nil
}

// Update implements Service.Update.
func (m *MockService) Update(ctx context.Context, id int64, input TaskInput, ownerID uuid.UUID) (*TaskData, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, input, ownerID)
	}
	return nil, ErrTaskNotFound
}

// Delete implements Service.Delete.
func (m *MockService) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, ownerID)
	}
	return ErrTaskNotFound
}

// Exists implements Service.Exists.
func (m *MockService) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}
