package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"confusion/internal/auth"
	"confusion/internal/cache"
	apperrors "confusion/internal/errors"
	"confusion/internal/model"
	"confusion/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
	usersListKey = "users:all"
)

// SignupInput carries the fields accepted when creating an account.
type SignupInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// AuthService handles accounts and the credentials that prove them.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*auth.Identity, error)
	IssueToken(ctx context.Context, id *auth.Identity) (string, error)
	Logout(ctx context.Context, id *auth.Identity) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	users      repository.UserRepository
	verifier   *auth.Verifier
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	cache      *cache.Client
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, verifier *auth.Verifier, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, cache *cache.Client) AuthService {
	return &authService{
		users:      users,
		verifier:   verifier,
		jwtService: jwtService,
		tokenStore: tokenStore,
		cache:      cache,
		now:        time.Now,
	}
}

// Signup creates a new user with a hashed password. New users are never admins.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		return nil, &apperrors.UserExistsError{Username: in.Username}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     in.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost the race against a concurrent signup for the same name
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperrors.UserExistsError{Username: in.Username}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersListKey)
	return user, nil
}

// Login checks a username/password pair.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.Identity, error) {
	return s.verifier.Verify(ctx, auth.Basic{Username: username, Password: password})
}

// IssueToken signs a bearer token for an already verified identity.
func (s *authService) IssueToken(ctx context.Context, id *auth.Identity) (string, error) {
	token, _, err := s.jwtService.GenerateToken(id.ID, id.Username)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the bearer token the identity was verified with.
func (s *authService) Logout(ctx context.Context, id *auth.Identity) error {
	if id == nil || id.TokenID == "" {
		return apperrors.ErrNotLoggedIn
	}
	ttl := id.ExpiresAt.Sub(s.now())
	if err := s.tokenStore.BlacklistToken(ctx, id.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ChangePassword replaces the password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.ErrPasswordTooLong
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// ListUsers returns every account, served from the cache when possible.
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	var cached []model.User
	if s.cache.GetJSON(ctx, usersListKey, &cached) {
		return cached, nil
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.cache.SetJSON(ctx, usersListKey, users, userCacheTTL)
	return users, nil
}
