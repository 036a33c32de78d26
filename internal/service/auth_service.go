package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"linkgate/internal/entities"
	"linkgate/internal/jwt"
	"linkgate/internal/models"
	"linkgate/internal/repository"
)

const minPasswordLength = 6

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	hasher     *PasswordHasher
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, hasher *PasswordHasher) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, entities.NewValidationError("Email and password are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, entities.NewValidationError("Password must be at least %d characters long", minPasswordLength)
	}

	// Check if user already exists; the unique index catches concurrent registrations
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, entities.ErrEmailExists
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, email, hashedPassword)
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{
		Message: "User created successfully",
		User:    models.UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}

// Login authenticates a user and returns user info with JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, entities.NewValidationError("Email and password are required")
	}

	user, err := s.Authenticate(ctx, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    models.UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}

// Authenticate returns the user only when the email exists and the password matches.
// Both failure modes yield entities.ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, entities.ErrUserNotFound) {
		return nil, entities.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, entities.ErrInvalidCredentials
	}
	return user, nil
}
