package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoTaskAccess    = errors.New("no access to task")
	ErrNotTaskOwner    = errors.New("only the task owner may perform this operation")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrShareWithOwner  = errors.New("cannot share a task with its owner")
	ErrTaskConflict    = errors.New("task was modified concurrently")
)

// Enums and types
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// User represents an account created from a third-party identity provider
// profile. Accounts are created on first login and never deleted here; only
// name and avatar are refreshed from the provider.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	AvatarURL *string   `json:"avatarUrl" db:"avatar_url"`
	Provider  string    `json:"provider" db:"provider"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Task represents a task owned by exactly one user and optionally shared
// with others. The owner is set at creation and never reassigned.
type Task struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description" db:"description"`
	DueDate     *time.Time  `json:"dueDate" db:"due_date"`
	Status      TaskStatus  `json:"status" db:"status"`
	Priority    Priority    `json:"priority" db:"priority"`
	OwnerID     uuid.UUID   `json:"ownerId" db:"owner_id"`
	SharedWith  []uuid.UUID `json:"sharedWith"`
	Reminders   []time.Time `json:"reminders"`
	Tags        []string    `json:"tags"`
	Attachments []string    `json:"attachments"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	Version     int         `json:"version" db:"version"`
}

// Access-control methods for Task

// IsOwner reports whether userID owns the task. Mutations (update, delete,
// share) require ownership.
func (t *Task) IsOwner(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

// IsSharedWith reports whether the task has been shared with userID.
func (t *Task) IsSharedWith(userID uuid.UUID) bool {
	for _, id := range t.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}

// CanView reports whether userID may read the task: the owner and every
// grantee in the shared-with set, nobody else.
func (t *Task) CanView(userID uuid.UUID) bool {
	return t.IsOwner(userID) || t.IsSharedWith(userID)
}

// AddGrantee appends userID to the shared-with set. Re-adding an existing
// grantee is a no-op. The owner is never added.
func (t *Task) AddGrantee(userID uuid.UUID) error {
	if t.IsOwner(userID) {
		return ErrShareWithOwner
	}
	if !t.IsSharedWith(userID) {
		t.SharedWith = append(t.SharedWith, userID)
	}
	return nil
}

// Validate checks the invariants a task must satisfy before persisting.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

// IsOverdue reports whether the due date has passed on an unfinished task.
func (t *Task) IsOverdue() bool {
	if t.DueDate == nil {
		return false
	}
	return time.Now().After(*t.DueDate) && t.Status != TaskStatusCompleted
}

// Utility methods
func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
