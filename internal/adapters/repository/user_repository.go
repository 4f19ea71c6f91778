package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskshare/core/internal/domain/entities"
	"github.com/taskshare/core/internal/infrastructure/database"
	"github.com/taskshare/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Upsert inserts the user or, when the email is already registered,
// refreshes name and avatar from the provider profile.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, email, name, avatar_url, provider)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url
		RETURNING id, created_at`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Name, user.AvatarURL, user.Provider,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `
		SELECT id, email, name, avatar_url, provider, created_at
		FROM users
		WHERE id = $1`

	var user entities.User
	err := r.db.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, email, name, avatar_url, provider, created_at
		FROM users
		WHERE email = $1`

	var user entities.User
	err := r.db.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
