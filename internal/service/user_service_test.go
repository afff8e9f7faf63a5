package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogserver/internal/models"
)

func seedUser(repo *mockUserRepo, id, name, email, password string) *models.User {
	hash, err := hashPassword(password)
	if err != nil {
		panic(err)
	}
	u := &models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	repo.users[id] = u
	return u
}

// --- Get / ListAuthors ---

func TestUserService_Get_NotFound(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &mockFiles{})
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Get_Success(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	u, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

// --- ChangeAvatar ---

func TestUserService_ChangeAvatar_MissingFile(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &mockFiles{})
	_, err := svc.ChangeAvatar(context.Background(), "u1", nil)
	if !errors.Is(err, ErrFileMissing) {
		t.Fatalf("expected ErrFileMissing, got %v", err)
	}
}

func TestUserService_ChangeAvatar_TooLarge(t *testing.T) {
	files := &mockFiles{}
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, files)

	_, err := svc.ChangeAvatar(context.Background(), "u1", fileHeader("big.png", maxAvatarBytes+1))
	if !errors.Is(err, ErrAvatarTooLarge) {
		t.Fatalf("expected ErrAvatarTooLarge, got %v", err)
	}
	if len(files.saved) != 0 {
		t.Fatalf("oversized avatar must be rejected before any file write, saved=%v", files.saved)
	}
}

func TestUserService_ChangeAvatar_ReplacesOldFile(t *testing.T) {
	files := &mockFiles{}
	repo := newMockUserRepo()
	u := seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	u.Avatar = "old-avatar.png"
	svc := NewUserService(repo, files)

	updated, err := svc.ChangeAvatar(context.Background(), "u1", fileHeader("new.png", 1000))
	if err != nil {
		t.Fatalf("ChangeAvatar returned error: %v", err)
	}
	if updated.Avatar != "stored-new.png" {
		t.Fatalf("expected new avatar filename, got %q", updated.Avatar)
	}
	if len(files.removed) != 1 || files.removed[0] != "old-avatar.png" {
		t.Fatalf("expected old avatar removal, removed=%v", files.removed)
	}
	if repo.users["u1"].Avatar != "stored-new.png" {
		t.Fatalf("avatar not persisted: %q", repo.users["u1"].Avatar)
	}
}

func TestUserService_ChangeAvatar_OldFileRemovalFailureTolerated(t *testing.T) {
	files := &mockFiles{removeErr: errors.New("unlink failed")}
	repo := newMockUserRepo()
	u := seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	u.Avatar = "old-avatar.png"
	svc := NewUserService(repo, files)

	if _, err := svc.ChangeAvatar(context.Background(), "u1", fileHeader("new.png", 1000)); err != nil {
		t.Fatalf("removal failure must not block the avatar change: %v", err)
	}
}

// --- EditProfile ---

func validEdit() EditProfileParams {
	return EditProfileParams{
		Name:           "Alice B",
		Email:          "alice.b@example.com",
		CurrentPass:    "password1",
		NewPass:        "newpass123",
		ConfirmNewPass: "newpass123",
	}
}

func TestUserService_EditProfile_Success(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	u, err := svc.EditProfile(context.Background(), "u1", validEdit())
	if err != nil {
		t.Fatalf("EditProfile returned error: %v", err)
	}
	if u.Name != "Alice B" || u.Email != "alice.b@example.com" {
		t.Fatalf("unexpected profile: %+v", u)
	}
	if err := verifyPassword(repo.users["u1"].PasswordHash, "newpass123"); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestUserService_EditProfile_MissingFields(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	p := validEdit()
	p.CurrentPass = ""
	if _, err := svc.EditProfile(context.Background(), "u1", p); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUserService_EditProfile_EmailTakenByOtherUser(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	seedUser(repo, "u2", "Bob", "bob@example.com", "password2")
	svc := NewUserService(repo, &mockFiles{})

	p := validEdit()
	p.Email = "bob@example.com"
	if _, err := svc.EditProfile(context.Background(), "u1", p); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_EditProfile_KeepingOwnEmailAllowed(t *testing.T) {
	// The taken-check compares ids by value, so keeping one's own email
	// must pass.
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	p := validEdit()
	p.Email = "alice@example.com"
	if _, err := svc.EditProfile(context.Background(), "u1", p); err != nil {
		t.Fatalf("keeping own email must be allowed: %v", err)
	}
}

func TestUserService_EditProfile_WrongCurrentPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	p := validEdit()
	p.CurrentPass = "wrongpass"
	if _, err := svc.EditProfile(context.Background(), "u1", p); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
}

func TestUserService_EditProfile_NewPasswordMismatch(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(repo, "u1", "Alice", "alice@example.com", "password1")
	svc := NewUserService(repo, &mockFiles{})

	p := validEdit()
	p.ConfirmNewPass = "different"
	if _, err := svc.EditProfile(context.Background(), "u1", p); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}
