package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req CreateUserRequest, actor string) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req UpdateUserRequest, actor string) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	ListUsers() ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Username string     `json:"username" validate:"required,min=3,max=50"`
	Name     string     `json:"name" validate:"required"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"required,oneof=admin cashier"`
}

type UpdateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=admin cashier"`
	IsActive bool       `json:"is_active"`
	// Password is optional; empty leaves the current hash in place.
	Password string `json:"password" validate:"omitempty,min=6"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo}
}

func (s *userService) CreateUser(req CreateUserRequest, actor string) (*model.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Name:     req.Name,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req UpdateUserRequest, actor string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Role = req.Role
	user.IsActive = req.IsActive
	user.UpdatedBy = actor
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
		user.TokenVersion = uuid.New().String()
	}
	if !user.IsActive {
		// Deactivation kills the live session too.
		user.TokenVersion = uuid.New().String()
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(id)
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}
