package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogserver/internal/models"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Ensure implementation of Posts interface at compile time.
var _ Posts = (*PostRepository)(nil)

const (
	insertPostSQL = `INSERT INTO posts (id, title, category, description, thumbnail, creator, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectPostByIDSQL = `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE id = ?`
	selectPostsSQL = `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts ORDER BY updated_at DESC`
	selectPostsByCategorySQL = `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE category = ? ORDER BY created_at DESC`
	selectPostsByCreatorSQL = `SELECT id, title, category, description, thumbnail, creator, created_at, updated_at
		FROM posts WHERE creator = ? ORDER BY created_at DESC`
	updatePostSQL = `UPDATE posts SET title = ?, category = ?, description = ?, thumbnail = ?, updated_at = ? WHERE id = ?`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// Create inserts a new post record.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	_, err := r.db.ExecContext(ctx, insertPostSQL,
		p.ID, p.Title, p.Category, p.Description, p.Thumbnail, p.Creator,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert post %q: %w", p.ID, err)
	}
	return nil
}

// GetByID fetches a post by id. Returns (nil, nil) if not found.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.Thumbnail, &p.Creator, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// List returns all posts, most recently updated first.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	return r.queryPosts(ctx, selectPostsSQL)
}

// ListByCategory returns posts in a category, newest first.
func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return r.queryPosts(ctx, selectPostsByCategorySQL, category)
}

// ListByCreator returns posts owned by a user, newest first.
func (r *PostRepository) ListByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	return r.queryPosts(ctx, selectPostsByCreatorSQL, creatorID)
}

// Update rewrites the mutable fields of a post. Returns sql.ErrNoRows
// (wrapped) when the post does not exist.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) error {
	res, err := r.db.ExecContext(ctx, updatePostSQL,
		p.Title, p.Category, p.Description, p.Thumbnail, p.UpdatedAt.UTC(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post %q: %w", p.ID, err)
	}
	return requireRowAffected(res, "post", p.ID)
}

// Delete removes a post record.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	return requireRowAffected(res, "post", id)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Category, &p.Description, &p.Thumbnail, &p.Creator, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		p.UpdatedAt = p.UpdatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}
