package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-relief-api/internal/auth"
	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
)

var (
	// ErrUserExists is the Conflict outcome of registering a taken email
	ErrUserExists = errors.New("user_already_exists")
	// ErrInvalidCredentials is the Unauthorized outcome of a failed login
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// UserService registers users and exchanges credentials for bearer tokens
type UserService interface {
	// Register hashes the password and stores the user. Returns ErrUserExists when the email is taken.
	Register(ctx context.Context, name, email, password string) error
	// Authenticate verifies the credentials and returns a signed token
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type userService struct {
	users  store.UserRepository
	tokens *auth.TokenIssuer
}

// NewUserService creates a new instance of UserService
func NewUserService(users store.UserRepository, tokens *auth.TokenIssuer) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, name, email, password string) error {
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := user.HashPassword(); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// the unique email index decides, so concurrent registrations cannot both win
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !user.CheckPassword(password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Email, user.Name)
}
