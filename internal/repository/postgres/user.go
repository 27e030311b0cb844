package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user into the database.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("user", "email", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	u, err := r.scanUser(ctx, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE email = $1`

	u, err := r.scanUser(ctx, query, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return u, nil
}

// List returns all users ordered by creation time.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.Name,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	if users == nil {
		users = []domain.User{}
	}

	return users, nil
}

// UpdateProfile applies a partial update via COALESCE so nil fields keep
// their stored value, and returns the user as stored.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    email = COALESCE($2, email),
		    password_hash = COALESCE($3, password_hash),
		    updated_at = $4
		WHERE id = $5
		RETURNING id, email, password_hash, name, role, created_at, updated_at`

	var u domain.User
	err := r.db.QueryRow(ctx, query,
		update.Name,
		update.Email,
		update.PasswordHash,
		time.Now().UTC(),
		id,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("user", "email", derefOr(update.Email, ""))
		}
		return nil, fmt.Errorf("update user profile: %w", err)
	}

	return &u, nil
}

// scanUser is a helper that executes a query expected to return a single user
// row. Errors are returned raw so callers can attach resource context.
func (r *UserRepository) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func derefOr(s *string, fallback string) string {
	if s != nil {
		return *s
	}
	return fallback
}
