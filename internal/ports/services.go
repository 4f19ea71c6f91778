package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskshare/core/internal/domain/entities"
)

// AuthService interface for session operations. The OAuth handshake itself
// happens at the identity provider; this service only turns a verified
// provider profile into a local account and a session token.
type AuthService interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for user lookups.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// TaskService interface for task operations. Every call takes the acting
// user's ID explicitly; there is no implicit current-actor state.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, actorID, taskID uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, actorID, taskID uuid.UUID) error
	ListTasks(ctx context.Context, actorID uuid.UUID) ([]*entities.Task, error)
	ShareTask(ctx context.Context, actorID, taskID, granteeID uuid.UUID) (*entities.Task, error)
}

// Request/Response Types

// Auth related types
type CreateSessionRequest struct {
	Provider  string  `json:"provider" validate:"required,oneof=google github facebook"`
	Email     string  `json:"email" validate:"required,email"`
	Name      string  `json:"name" validate:"required,max=200"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}

type SessionResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"tokenType"`
	ExpiresIn int64          `json:"expiresIn"`
	User      *entities.User `json:"user"`
}

// Task related types
type CreateTaskRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description *string              `json:"description"`
	DueDate     *time.Time           `json:"dueDate"`
	Status      *entities.TaskStatus `json:"status"`
	Priority    *entities.Priority   `json:"priority"`
	Reminders   []time.Time          `json:"reminders"`
	Tags        []string             `json:"tags"`
	Attachments []string             `json:"attachments"`
}

// UpdateTaskRequest is a partial patch; nil fields are left untouched and
// set fields win wholesale (no per-field merge within slices).
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	DueDate     *time.Time           `json:"dueDate"`
	Status      *entities.TaskStatus `json:"status"`
	Priority    *entities.Priority   `json:"priority"`
	Reminders   []time.Time          `json:"reminders"`
	Tags        []string             `json:"tags"`
	Attachments []string             `json:"attachments"`
}

type ShareTaskRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

// Claims carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
