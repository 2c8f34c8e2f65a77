package service

import (
	"errors"
	"fmt"
	"strings"

	"leave-service/internal/model"
	"leave-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the fields for a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService owns account registration, credential checks and the
// employee directory.
type UserService interface {
	Register(input RegisterInput) (*model.User, error)
	Authenticate(email, password string) (*model.User, error)
	ListEmployees() ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserService creates a user service backed by the given repository
func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, log: log}
}

// Register creates an account with a bcrypt-hashed password. The role
// defaults to employee when absent.
func (s *userService) Register(input RegisterInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	role := input.Role
	if role == "" {
		role = model.RoleEmployee
	}
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or employee", ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Uint("id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return user, nil
}

// Authenticate checks the credentials and returns the matching user
func (s *userService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ListEmployees returns registered users with the employee role,
// administrators excluded.
func (s *userService) ListEmployees() ([]model.User, error) {
	return s.userRepo.ListByRole(model.RoleEmployee)
}
