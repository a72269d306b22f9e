package service

import (
	"fmt"
	"strings"

	"github.com/fuelflow/internal/constants"
	"github.com/fuelflow/internal/models"
	"github.com/fuelflow/internal/repository"
	"github.com/fuelflow/internal/workflow"
)

// UserService manages department accounts.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
}

// NewUserService creates the user service.
func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// CreateUserInput is the account creation payload.
type CreateUserInput struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	Department string
	Role       string
}

// Create adds an account to a department.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", workflow.ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", workflow.ErrValidation)
	}
	if !validDepartment(input.Department) {
		return nil, fmt.Errorf("%w: unknown department %q", workflow.ErrValidation, input.Department)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username taken", workflow.ErrValidation)
	}

	hash, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.TrimSpace(input.Email),
		Department:   input.Department,
		Role:         strings.TrimSpace(input.Role),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get fetches an account.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// List fetches an account page.
func (s *UserService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// UpdateProfileInput is the account update payload.
type UpdateProfileInput struct {
	FullName   string
	Email      string
	Department string
	Role       string
}

// UpdateProfile changes display and department fields. A department change
// invalidates issued tokens so old claims cannot keep the old permissions.
func (s *UserService) UpdateProfile(id uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if input.Department != "" && !validDepartment(input.Department) {
		return nil, fmt.Errorf("%w: unknown department %q", workflow.ErrValidation, input.Department)
	}

	if name := strings.TrimSpace(input.FullName); name != "" {
		user.FullName = name
	}
	if input.Role != "" {
		user.Role = strings.TrimSpace(input.Role)
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}
	if input.Department != "" && input.Department != user.Department {
		user.Department = input.Department
		user.TokenVersion++
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetStatus enables or disables accounts.
func (s *UserService) SetStatus(ids []uint, status string) error {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return fmt.Errorf("%w: unknown status %q", workflow.ErrValidation, status)
	}
	return s.userRepo.BatchUpdateStatus(ids, status)
}

func validDepartment(department string) bool {
	switch department {
	case constants.DepartmentSales,
		constants.DepartmentManagement,
		constants.DepartmentFinance,
		constants.DepartmentTransport,
		constants.DepartmentWarehouse,
		constants.DepartmentAdmin:
		return true
	}
	return false
}
