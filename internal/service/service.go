package service

import (
	"context"
	"mime/multipart"

	"blogserver/internal/models"
	"blogserver/internal/repository"
)

// Identity is the verified subject attached to authenticated requests.
type Identity struct {
	UserID string
	Name   string
}

// RegisterParams carries the registration form fields.
type RegisterParams struct {
	Name      string
	Email     string
	Password  string
	Password2 string
}

// LoginResult is what a successful credential check returns to the client.
type LoginResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// EditProfileParams carries the profile edit form fields.
type EditProfileParams struct {
	Name           string
	Email          string
	CurrentPass    string
	NewPass        string
	ConfirmNewPass string
}

// PostParams carries the post create/edit form fields.
type PostParams struct {
	Title       string
	Category    string
	Description string
}

type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (*models.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	ParseToken(accessToken string) (Identity, error)
}

type Users interface {
	Get(ctx context.Context, id string) (*models.User, error)
	ListAuthors(ctx context.Context) ([]models.User, error)
	ChangeAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*models.User, error)
	EditProfile(ctx context.Context, userID string, p EditProfileParams) (*models.User, error)
}

type Posts interface {
	Create(ctx context.Context, creatorID string, p PostParams, thumbnail *multipart.FileHeader) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByCategory(ctx context.Context, category string) ([]models.Post, error)
	ListByAuthor(ctx context.Context, userID string) ([]models.Post, error)
	Edit(ctx context.Context, id string, p PostParams, thumbnail *multipart.FileHeader) (*models.Post, error)
	// Delete removes the post and its thumbnail; the returned message
	// reports degraded success when the thumbnail file was already gone.
	Delete(ctx context.Context, id, actorID string) (string, error)
}

// Feed fans out newly created posts to live subscribers.
type Feed interface {
	Subscribe() (<-chan models.Post, func())
	Publish(p models.Post)
}

// FileStore is the slice of the upload store the services need.
type FileStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(name string) error
}

// Service aggregates all sub-services behind one wiring point.
type Service struct {
	Authorization
	Users
	Posts
	Feed
}

// NewService wires the repository layer, upload store and signing key into
// concrete services.
func NewService(repos *repository.Repository, files FileStore, signingKey []byte) *Service {
	feed := NewPostFeed()
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Users:         NewUserService(repos.Users, files),
		Posts:         NewPostService(repos.Posts, repos.Users, files, feed),
		Feed:          feed,
	}
}
