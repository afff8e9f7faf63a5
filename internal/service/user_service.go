package service

import (
	"context"
	"mime/multipart"
	"strings"

	"blogserver/internal/models"
	"blogserver/internal/repository"
)

// Avatars are capped at 500000 bytes, checked before any file or store write.
const maxAvatarBytes = 500000

// UserService covers profile reads, avatar changes and profile edits.
type UserService struct {
	users repository.Users
	files FileStore
}

func NewUserService(users repository.Users, files FileStore) *UserService {
	return &UserService{users: users, files: files}
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// ListAuthors returns all registered users.
func (s *UserService) ListAuthors(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// ChangeAvatar stores the uploaded image and points the user record at it.
// A previous avatar is removed best-effort; its absence never blocks the
// replacement.
func (s *UserService) ChangeAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*models.User, error) {
	if avatar == nil {
		return nil, ErrFileMissing
	}
	if avatar.Size > maxAvatarBytes {
		return nil, ErrAvatarTooLarge
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.Avatar != "" {
		_ = s.files.Remove(u.Avatar)
	}

	name, err := s.files.Save(avatar)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateAvatar(ctx, userID, name); err != nil {
		return nil, err
	}

	u.Avatar = name
	return u, nil
}

// EditProfile updates name, email and password in one shot. The email-taken
// check compares user ids by value, so a user keeping their own email
// passes; any other holder of the email blocks the change.
func (s *UserService) EditProfile(ctx context.Context, userID string, p EditProfileParams) (*models.User, error) {
	if p.Name == "" || p.Email == "" || p.CurrentPass == "" || p.NewPass == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	email := strings.ToLower(p.Email)
	holder, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if holder != nil && holder.ID != userID {
		return nil, ErrEmailTaken
	}

	if err := verifyPassword(u.PasswordHash, p.CurrentPass); err != nil {
		return nil, ErrWrongPassword
	}
	if p.NewPass != p.ConfirmNewPass {
		return nil, ErrPasswordMismatch
	}

	hash, err := hashPassword(p.NewPass)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateProfile(ctx, userID, p.Name, email, hash); err != nil {
		return nil, err
	}

	u.Name = p.Name
	u.Email = email
	u.PasswordHash = hash
	return u, nil
}
