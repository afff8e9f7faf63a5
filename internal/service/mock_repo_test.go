package service

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"

	"blogserver/internal/models"
)

// ---- Repository Mocks ----

// mockUserRepo is an in-memory stand-in for repository.Users. Unset
// function fields fall back to the map-backed default behavior.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by id

	createErr error
	getErr    error

	adjustCalls []adjustCall
	emailCalls  []string
}

type adjustCall struct {
	id    string
	delta int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailCalls = append(m.emailCalls, email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id, avatar string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.Avatar = avatar
	return nil
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id, name, email, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.Name = name
	u.Email = email
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepo) AdjustPostCount(ctx context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adjustCalls = append(m.adjustCalls, adjustCall{id: id, delta: delta})
	if u, ok := m.users[id]; ok {
		u.Posts += delta
		if u.Posts < 0 {
			u.Posts = 0
		}
	}
	return nil
}

// mockPostRepo is an in-memory stand-in for repository.Posts.
type mockPostRepo struct {
	mu    sync.Mutex
	posts map[string]*models.Post

	createErr   error
	createCalls int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[string]*models.Post)}
}

func (m *mockPostRepo) Create(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockPostRepo) List(ctx context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPostRepo) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) ListByCreator(ctx context.Context, creatorID string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		if p.Creator == creatorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) Update(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return errors.New("no such post")
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return errors.New("no such post")
	}
	delete(m.posts, id)
	return nil
}

// ---- FileStore Mock ----

type mockFiles struct {
	saveErr   error
	removeErr error

	saved   []string
	removed []string
}

func (m *mockFiles) Save(fh *multipart.FileHeader) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	name := "stored-" + fh.Filename
	m.saved = append(m.saved, name)
	return name, nil
}

func (m *mockFiles) Remove(name string) error {
	m.removed = append(m.removed, name)
	return m.removeErr
}

// ---- Shared helpers ----

// fileHeader fabricates a multipart.FileHeader with the given name and
// size, enough for size/presence validation paths.
func fileHeader(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}
