package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskshare/core/internal/domain/entities"
	"github.com/taskshare/core/internal/infrastructure/database"
	"github.com/taskshare/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface. Grants live
// in the task_shares relation keyed by (task_id, user_id), so "shared with
// me" is an indexed lookup rather than an array scan.
type TaskRepositoryImpl struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

const taskColumns = `id, title, description, due_date, status, priority, owner_id,
	reminders, tags, attachments, created_at, updated_at, version`

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, due_date, status, priority, owner_id,
			reminders, tags, attachments, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	reminders, err := json.Marshal(task.Reminders)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}

	_, err = r.db.DB.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.DueDate, task.Status, task.Priority,
		task.OwnerID, reminders, pq.StringArray(task.Tags),
		pq.StringArray(task.Attachments), task.CreatedAt, task.UpdatedAt, task.Version,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.DB.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	if err := r.loadShares(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Update writes the task's fields conditionally on the version it was read
// at and bumps the counter, so concurrent writers cannot silently overwrite
// each other.
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, status = $5, priority = $6,
			reminders = $7, tags = $8, attachments = $9, updated_at = $10,
			version = version + 1
		WHERE id = $1 AND version = $11
		RETURNING version`

	reminders, err := json.Marshal(task.Reminders)
	if err != nil {
		return fmt.Errorf("encode reminders: %w", err)
	}

	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowContext(ctx, query,
			task.ID, task.Title, task.Description, task.DueDate, task.Status, task.Priority,
			reminders, pq.StringArray(task.Tags), pq.StringArray(task.Attachments),
			task.UpdatedAt, task.Version,
		).Scan(&task.Version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update task: %w", err)
		}

		// Zero rows: either the task is gone or someone else bumped the
		// version between our read and this write.
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, task.ID); err != nil {
			return fmt.Errorf("check task existence: %w", err)
		}
		if exists {
			return entities.ErrTaskConflict
		}
		return entities.ErrTaskNotFound
	})
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) ListAccessible(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.owner_id = $1
			OR EXISTS (SELECT 1 FROM task_shares s WHERE s.task_id = t.id AND s.user_id = $1)
		ORDER BY created_at DESC`

	rows, err := r.db.DB.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if err := r.loadSharesBulk(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

// AddShare records a grant; inserting the same grant twice is a no-op.
func (r *TaskRepositoryImpl) AddShare(ctx context.Context, taskID, userID uuid.UUID) error {
	query := `
		INSERT INTO task_shares (task_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (task_id, user_id) DO NOTHING`

	_, err := r.db.DB.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("add share: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) loadShares(ctx context.Context, task *entities.Task) error {
	query := `SELECT user_id FROM task_shares WHERE task_id = $1 ORDER BY created_at`

	var grantees []uuid.UUID
	if err := r.db.DB.SelectContext(ctx, &grantees, query, task.ID); err != nil {
		return fmt.Errorf("load shares: %w", err)
	}

	task.SharedWith = grantees
	return nil
}

func (r *TaskRepositoryImpl) loadSharesBulk(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	byID := make(map[uuid.UUID]*entities.Task, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query := `SELECT task_id, user_id FROM task_shares WHERE task_id = ANY($1) ORDER BY created_at`

	rows, err := r.db.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, userID uuid.UUID
		if err := rows.Scan(&taskID, &userID); err != nil {
			return fmt.Errorf("scan share: %w", err)
		}
		if t, ok := byID[taskID]; ok {
			t.SharedWith = append(t.SharedWith, userID)
		}
	}

	return rows.Err()
}

// rowScanner covers both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTask scans a task row; tags/attachments go through pq wrappers and
// reminders through JSONB, since sqlx struct scanning handles neither.
func scanTask(row rowScanner) (*entities.Task, error) {
	var (
		task      entities.Task
		reminders []byte
	)

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.DueDate, &task.Status,
		&task.Priority, &task.OwnerID, &reminders,
		(*pq.StringArray)(&task.Tags), (*pq.StringArray)(&task.Attachments),
		&task.CreatedAt, &task.UpdatedAt, &task.Version,
	)
	if err != nil {
		return nil, err
	}

	if len(reminders) > 0 {
		if err := json.Unmarshal(reminders, &task.Reminders); err != nil {
			return nil, fmt.Errorf("decode reminders: %w", err)
		}
	}

	return &task, nil
}
