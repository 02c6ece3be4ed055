package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/impactlab/volunteer-matcher/internal/config"
	"github.com/impactlab/volunteer-matcher/internal/store"
	"github.com/impactlab/volunteer-matcher/internal/types"
)

// UserService provides business logic for account operations
type UserService struct {
	store          store.Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(s store.Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          s,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account with password authentication
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	// Check if email already exists
	_, err := s.store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = types.RoleVolunteer
	}

	userID, err := s.store.CreateUser(ctx, req.Name, req.Email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	account, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}

	// Password hash stays behind the store boundary
	return account.User(), nil
}

// Login authenticates a user and returns account data
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	account, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// Same generic error whether the account exists or not
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrInvalidCredentials{}
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.passwordConfig.VerifyPassword(req.Password, account.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}

	return account.User(), nil
}

// GetUser returns the account for the given ID.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	account, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrUserNotFound{UserID: userID}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return account.User(), nil
}
