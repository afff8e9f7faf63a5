package handlers

import (
	"context"
	"mime/multipart"

	"blogserver/internal/models"
	"blogserver/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser *models.User
	registerErr  error
	loginResult  service.LoginResult
	loginErr     error
	parseIdent   service.Identity
	parseErr     error

	lastRegister   service.RegisterParams
	lastLoginEmail string
	lastParseToken string
	registerCalls  int
	loginCalls     int
}

func (m *mockAuth) Register(ctx context.Context, p service.RegisterParams) (*models.User, error) {
	m.registerCalls++
	m.lastRegister = p
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (service.LoginResult, error) {
	m.loginCalls++
	m.lastLoginEmail = email
	return m.loginResult, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdent, m.parseErr
}

type mockUsers struct {
	user       *models.User
	userErr    error
	authors    []models.User
	authorsErr error

	lastGetID        string
	lastAvatarUser   string
	lastAvatarHeader *multipart.FileHeader
	lastEditUser     string
	lastEditParams   service.EditProfileParams
}

func (m *mockUsers) Get(ctx context.Context, id string) (*models.User, error) {
	m.lastGetID = id
	return m.user, m.userErr
}

func (m *mockUsers) ListAuthors(ctx context.Context) ([]models.User, error) {
	return m.authors, m.authorsErr
}

func (m *mockUsers) ChangeAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (*models.User, error) {
	m.lastAvatarUser = userID
	m.lastAvatarHeader = avatar
	return m.user, m.userErr
}

func (m *mockUsers) EditProfile(ctx context.Context, userID string, p service.EditProfileParams) (*models.User, error) {
	m.lastEditUser = userID
	m.lastEditParams = p
	return m.user, m.userErr
}

type mockPosts struct {
	post      *models.Post
	postErr   error
	posts     []models.Post
	postsErr  error
	deleteMsg string
	deleteErr error

	createCalls    int
	lastCreator    string
	lastParams     service.PostParams
	lastThumbnail  *multipart.FileHeader
	lastEditID     string
	lastDeleteID   string
	lastDeleteUser string
}

func (m *mockPosts) Create(ctx context.Context, creatorID string, p service.PostParams, thumbnail *multipart.FileHeader) (*models.Post, error) {
	m.createCalls++
	m.lastCreator = creatorID
	m.lastParams = p
	m.lastThumbnail = thumbnail
	return m.post, m.postErr
}

func (m *mockPosts) Get(ctx context.Context, id string) (*models.Post, error) {
	return m.post, m.postErr
}

func (m *mockPosts) List(ctx context.Context) ([]models.Post, error) {
	return m.posts, m.postsErr
}

func (m *mockPosts) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return m.posts, m.postsErr
}

func (m *mockPosts) ListByAuthor(ctx context.Context, userID string) ([]models.Post, error) {
	return m.posts, m.postsErr
}

func (m *mockPosts) Edit(ctx context.Context, id string, p service.PostParams, thumbnail *multipart.FileHeader) (*models.Post, error) {
	m.lastEditID = id
	m.lastParams = p
	m.lastThumbnail = thumbnail
	return m.post, m.postErr
}

func (m *mockPosts) Delete(ctx context.Context, id, actorID string) (string, error) {
	m.lastDeleteID = id
	m.lastDeleteUser = actorID
	return m.deleteMsg, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, "")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
