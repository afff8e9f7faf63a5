package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogserver/internal/models"
	"blogserver/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Tokens are valid for exactly one hour from issuance. There is no refresh
// or revocation: an expired token means logging in again.
const tokenTTL = time.Hour

const minPasswordLen = 6

// AuthService owns credential handling and token issuance/verification.
// The signing key is injected at construction and never mutated.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey []byte) *AuthService {
	return &AuthService{users: users, signingKey: signingKey}
}

// Claims is the identity assertion carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// Register validates the sign-up form, hashes the password and creates the
// user. Emails are lowercased before the uniqueness lookup and storage.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	if p.Name == "" || p.Email == "" || p.Password == "" || p.Password2 == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(p.Email)
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if len(strings.TrimSpace(p.Password)) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if p.Password != p.Password2 {
		return nil, ErrPasswordMismatch
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         p.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and returns a signed token plus the subject's
// id and name. Wrong email and wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, ErrMissingFields
	}

	u, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID, u.Name)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ID: u.ID, Name: u.Name}, nil
}

// ParseToken verifies signature and expiry and returns the embedded
// identity. It does not check that the subject still exists.
func (s *AuthService) ParseToken(accessToken string) (Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Name: claims.Name}, nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Name:   name,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
