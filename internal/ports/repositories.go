package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskshare/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// Upsert inserts a user keyed by email, refreshing name and avatar from
	// the identity provider when the account already exists. ID and
	// CreatedAt are populated on return.
	Upsert(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TaskRepository defines the interface for task data operations. GetByID and
// ListAccessible return tasks with their shared-with set loaded.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	// Update applies the task's fields conditionally on its version,
	// bumping the counter. A stale version yields ErrTaskConflict; a
	// missing row yields ErrTaskNotFound.
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListAccessible returns every task the user owns or has been granted
	// access to.
	ListAccessible(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error)
	// AddShare records a grant. Inserting an existing grant is a no-op.
	AddShare(ctx context.Context, taskID, userID uuid.UUID) error
}
