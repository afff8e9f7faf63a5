package repository

import (
	"blogserver/internal/models"
	"blogserver/internal/repository/db"
	"context"
	"database/sql"
)

// Users is the persistence surface for user records.
// Lookups return (nil, nil) when no record matches.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) error
	UpdateProfile(ctx context.Context, id, name, email, passwordHash string) error
	// AdjustPostCount applies delta to the denormalized post counter in a
	// single statement, clamped at zero.
	AdjustPostCount(ctx context.Context, id string, delta int) error
}

// Posts is the persistence surface for post records.
type Posts interface {
	Create(ctx context.Context, p *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByCategory(ctx context.Context, category string) ([]models.Post, error)
	ListByCreator(ctx context.Context, creatorID string) ([]models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users Users
	Posts Posts
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(sqlDB),
		Posts: NewPostRepository(sqlDB),
	}
}

// InitDB re-exports the db package initializer so main wires against a
// single repository entry point.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
