package entities

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_AccessControl(t *testing.T) {
	owner := uuid.New()
	grantee := uuid.New()
	stranger := uuid.New()

	task := &Task{
		ID:         uuid.New(),
		Title:      "Ship release",
		OwnerID:    owner,
		SharedWith: []uuid.UUID{grantee},
	}

	assert.True(t, task.IsOwner(owner))
	assert.False(t, task.IsOwner(grantee))

	assert.True(t, task.IsSharedWith(grantee))
	assert.False(t, task.IsSharedWith(owner))
	assert.False(t, task.IsSharedWith(stranger))

	assert.True(t, task.CanView(owner))
	assert.True(t, task.CanView(grantee))
	assert.False(t, task.CanView(stranger))
}

func TestTask_AddGrantee(t *testing.T) {
	owner := uuid.New()
	grantee := uuid.New()

	task := &Task{ID: uuid.New(), Title: "x", OwnerID: owner}

	require.NoError(t, task.AddGrantee(grantee))
	require.Len(t, task.SharedWith, 1)

	// Idempotent: second grant leaves the set unchanged
	require.NoError(t, task.AddGrantee(grantee))
	require.Len(t, task.SharedWith, 1)

	require.ErrorIs(t, task.AddGrantee(owner), ErrShareWithOwner)
	require.Len(t, task.SharedWith, 1)
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{
			name: "valid",
			task: Task{Title: "a", Status: TaskStatusPending, Priority: PriorityMedium},
		},
		{
			name:    "empty title",
			task:    Task{Title: "", Status: TaskStatusPending, Priority: PriorityMedium},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace title",
			task:    Task{Title: "   ", Status: TaskStatusPending, Priority: PriorityMedium},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "bad status",
			task:    Task{Title: "a", Status: "done", Priority: PriorityMedium},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "bad priority",
			task:    Task{Title: "a", Status: TaskStatusCompleted, Priority: "critical"},
			wantErr: ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	assert.False(t, (&Task{}).IsOverdue())
	assert.True(t, (&Task{DueDate: &past, Status: TaskStatusPending}).IsOverdue())
	assert.False(t, (&Task{DueDate: &past, Status: TaskStatusCompleted}).IsOverdue())
	assert.False(t, (&Task{DueDate: &future, Status: TaskStatusPending}).IsOverdue())
}

func TestEnums_IsValid(t *testing.T) {
	assert.True(t, TaskStatusPending.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusCompleted.IsValid())
	assert.False(t, TaskStatus("archived").IsValid())

	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("urgent").IsValid())
}
