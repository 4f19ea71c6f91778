package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskshare/core/internal/domain/entities"
	"github.com/taskshare/core/internal/infrastructure/logger"
	"github.com/taskshare/core/internal/ports"
)

// TaskService implements task CRUD and sharing with the ownership-based
// access-control rules: the owner and every grantee may read, only the
// owner may mutate. Existence is checked before authorization, so a caller
// probing a real task id they cannot access receives a forbidden error
// rather than not-found.
type TaskService struct {
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, userRepo ports.UserRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateTask creates a new task owned by ownerID. Title is required;
// status and priority default to pending/medium.
func (s *TaskService) CreateTask(ctx context.Context, ownerID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	now := time.Now()
	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      entities.TaskStatusPending,
		Priority:    entities.PriorityMedium,
		OwnerID:     ownerID,
		Reminders:   req.Reminders,
		Tags:        req.Tags,
		Attachments: req.Attachments,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "owner_id", ownerID)

	return task, nil
}

// GetTask retrieves a task by ID for actorID.
func (s *TaskService) GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.CanView(actorID) {
		return nil, entities.ErrNoTaskAccess
	}

	return task, nil
}

// ListTasks returns every task actorID owns or has been granted access to.
func (s *TaskService) ListTasks(ctx context.Context, actorID uuid.UUID) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListAccessible(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask merges the patch into the task. Only the owner may update;
// the write is conditional on the version read here, so a concurrent
// update surfaces as a conflict instead of silently losing fields.
func (s *TaskService) UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwner(actorID) {
		return nil, entities.ErrNotTaskOwner
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Reminders != nil {
		task.Reminders = req.Reminders
	}
	if req.Tags != nil {
		task.Tags = req.Tags
	}
	if req.Attachments != nil {
		task.Attachments = req.Attachments
	}
	task.UpdatedAt = time.Now()

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("Task updated", "task_id", task.ID, "version", task.Version)

	return task, nil
}

// DeleteTask removes the task permanently. Owner only; no tombstone.
func (s *TaskService) DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !task.IsOwner(actorID) {
		return entities.ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return err
	}

	s.logger.Info("Task deleted", "task_id", taskID, "owner_id", actorID)

	return nil
}

// ShareTask grants granteeID read access. Owner only; idempotent, so
// re-sharing with the same grantee leaves the set unchanged.
func (s *TaskService) ShareTask(ctx context.Context, actorID, taskID, granteeID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwner(actorID) {
		return nil, entities.ErrNotTaskOwner
	}

	if _, err := s.userRepo.GetByID(ctx, granteeID); err != nil {
		return nil, err
	}

	if err := task.AddGrantee(granteeID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.AddShare(ctx, taskID, granteeID); err != nil {
		return nil, fmt.Errorf("failed to share task: %w", err)
	}

	s.logger.Info("Task shared", "task_id", taskID, "grantee_id", granteeID)

	return task, nil
}
