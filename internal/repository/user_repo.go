package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogserver/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, avatar, posts, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectUserByIDSQL    = `SELECT id, name, email, password_hash, avatar, posts, created_at FROM users WHERE id = ?`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash, avatar, posts, created_at FROM users WHERE email = ?`
	selectUsersSQL       = `SELECT id, name, email, password_hash, avatar, posts, created_at FROM users ORDER BY created_at DESC`
	updateAvatarSQL      = `UPDATE users SET avatar = ? WHERE id = ?`
	updateProfileSQL     = `UPDATE users SET name = ?, email = ?, password_hash = ? WHERE id = ?`
	adjustPostCountSQL   = `UPDATE users SET posts = MAX(posts + ?, 0) WHERE id = ?`
)

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Avatar, u.Posts, u.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), id)
}

// GetByEmail fetches a user by (lowercased) email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email), email)
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.Posts, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpdateAvatar stores the new avatar filename for a user.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	res, err := r.db.ExecContext(ctx, updateAvatarSQL, avatar, id)
	if err != nil {
		return fmt.Errorf("update avatar for user %q: %w", id, err)
	}
	return requireRowAffected(res, "user", id)
}

// UpdateProfile stores name, email and password hash in one statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, updateProfileSQL, name, email, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update profile for user %q: %w", id, err)
	}
	return requireRowAffected(res, "user", id)
}

// AdjustPostCount applies delta to the post counter atomically, never
// dropping below zero.
func (r *UserRepository) AdjustPostCount(ctx context.Context, id string, delta int) error {
	if _, err := r.db.ExecContext(ctx, adjustPostCountSQL, delta, id); err != nil {
		return fmt.Errorf("adjust post count for user %q: %w", id, err)
	}
	return nil
}

func (r *UserRepository) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar, &u.Posts, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", key, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// requireRowAffected converts a zero-row update into sql.ErrNoRows so the
// service layer can map it to a not-found error.
func requireRowAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s %q: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, sql.ErrNoRows)
	}
	return nil
}
