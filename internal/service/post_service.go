package service

import (
	"context"
	"errors"
	"io/fs"
	"mime/multipart"
	"time"

	"blogserver/internal/models"
	"blogserver/internal/repository"

	"github.com/google/uuid"
)

// Thumbnails are capped at 2,000,000 bytes, checked before any file or
// store write.
const maxThumbnailBytes = 2_000_000

// Delete confirmations; the degraded variant reports a thumbnail that was
// already missing from storage.
const (
	msgPostDeleted            = "Post and thumbnail deleted successfully."
	msgPostDeletedNoThumbnail = "Post deleted successfully, but thumbnail not found."
)

// PostService covers post CRUD, filtered listings and thumbnail lifecycle.
type PostService struct {
	posts repository.Posts
	users repository.Users
	files FileStore
	feed  Feed
}

func NewPostService(posts repository.Posts, users repository.Users, files FileStore, feed Feed) *PostService {
	return &PostService{posts: posts, users: users, files: files, feed: feed}
}

// Create validates the form, stores the thumbnail, inserts the post and
// bumps the creator's post counter. The counter update is best-effort: a
// crash between insert and update leaves the counter stale, by documented
// limitation.
func (s *PostService) Create(ctx context.Context, creatorID string, p PostParams, thumbnail *multipart.FileHeader) (*models.Post, error) {
	if p.Title == "" || p.Category == "" || p.Description == "" || thumbnail == nil {
		return nil, ErrMissingFields
	}
	if thumbnail.Size > maxThumbnailBytes {
		return nil, ErrThumbnailTooLarge
	}

	name, err := s.files.Save(thumbnail)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:          uuid.New().String(),
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Thumbnail:   name,
		Creator:     creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.users.AdjustPostCount(ctx, creatorID, 1); err != nil {
		return nil, err
	}

	s.feed.Publish(*post)
	return post, nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// List returns all posts, most recently updated first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// ListByCategory returns posts in a category, newest first.
func (s *PostService) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return s.posts.ListByCategory(ctx, category)
}

// ListByAuthor returns posts owned by a user, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.ListByCreator(ctx, userID)
}

// Edit rewrites the post fields and optionally swaps the thumbnail. The old
// thumbnail is removed before the new one is stored; a failed removal is
// tolerated so a half-missing file never wedges the edit.
//
// Ownership is not checked here: any authenticated user may edit any post.
// Known gap, kept until a product decision hardens it.
func (s *PostService) Edit(ctx context.Context, id string, p PostParams, thumbnail *multipart.FileHeader) (*models.Post, error) {
	if p.Title == "" || p.Category == "" || p.Description == "" {
		return nil, ErrMissingFields
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrUpdateFailed
	}

	if thumbnail != nil {
		if thumbnail.Size > maxThumbnailBytes {
			return nil, ErrThumbnailTooLarge
		}
		_ = s.files.Remove(post.Thumbnail)
		name, err := s.files.Save(thumbnail)
		if err != nil {
			return nil, err
		}
		post.Thumbnail = name
	}

	post.Title = p.Title
	post.Category = p.Category
	post.Description = p.Description
	post.UpdatedAt = time.Now().UTC()

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post record, its thumbnail file and decrements the
// actor's post counter. A thumbnail already missing from storage degrades
// the confirmation message instead of failing the whole operation.
//
// Like Edit, ownership is not enforced; actorID only scopes the counter
// decrement.
func (s *PostService) Delete(ctx context.Context, id, actorID string) (string, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", ErrPostNotFound
	}

	msg := msgPostDeleted
	if post.Thumbnail != "" {
		if err := s.files.Remove(post.Thumbnail); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return "", err
			}
			msg = msgPostDeletedNoThumbnail
		}
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return "", err
	}
	if err := s.users.AdjustPostCount(ctx, actorID, -1); err != nil {
		return "", err
	}
	return msg, nil
}
