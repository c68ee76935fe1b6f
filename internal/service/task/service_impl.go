package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-api/internal/domain"
	"github.com/taskhub/taskhub-api/internal/platform/logger"
	"github.com/taskhub/taskhub-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewService creates a new task Service implementation.
func NewService(taskStore store.TaskStore, logger *slog.Logger) Service {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// List implements Service.List.
func (s *serviceImpl) List(
	ctx context.Context,
	query store.TaskQuery,
	ownerID uuid.UUID,
) ([]TaskData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Force the owner filter to the caller. Whatever the client put in the
	// query is discarded; this is the guard against cross-user enumeration.
	query.OwnerID = ownerID
	query.Normalize()

	tasks, err := s.taskStore.List(ctx, query)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	out := make([]TaskData, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskData(t))
	}

	return out, nil
}

// Get implements Service.Get.
func (s *serviceImpl) Get(ctx context.Context, id int64, ownerID uuid.UUID) (*TaskData, error) {
	task, err := s.fetchOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	data := toTaskData(task)
	return &data, nil
}

// Create implements Service.Create.
func (s *serviceImpl) Create(
	ctx context.Context,
	input TaskInput,
	ownerID uuid.UUID,
) (*TaskData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Owner comes from the authenticated caller, never from the input.
	task, err := domain.NewTask(input.Title, input.Description, input.IsCompleted, input.DueDate, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created",
		slog.Int64("task_id", task.ID),
		slog.String("owner_id", ownerID.String()))

	data := toTaskData(task)
	return &data, nil
}

// Update implements Service.Update.
func (s *serviceImpl) Update(
	ctx context.Context,
	id int64,
	input TaskInput,
	ownerID uuid.UUID,
) (*TaskData, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.fetchOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	// Replace the mutable fields; ID and OwnerID stay as fetched.
	task.Title = input.Title
	task.Description = input.Description
	task.IsCompleted = input.IsCompleted
	task.DueDate = input.DueDate

	if err := s.taskStore.Update(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			// Deleted between fetch and update; same outcome as never existing.
			return nil, ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	data := toTaskData(task)
	return &data, nil
}

// Delete implements Service.Delete.
func (s *serviceImpl) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.fetchOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id),
			slog.String("owner_id", ownerID.String()))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Debug("task deleted",
		slog.Int64("task_id", id),
		slog.String("owner_id", ownerID.String()))

	return nil
}

// Exists implements Service.Exists.
func (s *serviceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.taskStore.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return exists, nil
}

// fetchOwned retrieves a task and verifies ownership. An absent task and an
// ownership mismatch both come back as ErrTaskNotFound so callers cannot
// distinguish them.
func (s *serviceImpl) fetchOwned(
	ctx context.Context,
	id int64,
	ownerID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task.OwnerID != ownerID {
		log.Debug("task owner mismatch",
			slog.Int64("task_id", id),
			slog.String("caller_id", ownerID.String()))
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func toTaskData(t *domain.Task) TaskData {
	return TaskData{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID.String(),
	}
}
