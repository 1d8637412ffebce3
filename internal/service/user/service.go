package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/expenseflow/expense-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ManagerID: u.ManagerID,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListCompanyUsers implements user.UserService. Admin accounts are not
// listed; they are managed at signup, not through the directory.
func (s *UserServiceImpl) ListCompanyUsers(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	users, err := s.UserRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		if u.Role == user.RoleAdmin {
			continue
		}
		responses = append(responses, toResponse(u))
	}

	return responses, nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, companyID string, req user.CreateUserRequest) (user.UserResponse, error) {
	existing, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != "" {
		return user.UserResponse{}, user.ErrEmailExists
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, companyID, *req.ManagerID); err != nil {
			return user.UserResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		CompanyID:    companyID,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         user.Role(req.Role),
		ManagerID:    req.ManagerID,
	})
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return toResponse(created), nil
}

// UpdateUser implements user.UserService. Only role and manager assignment
// change after creation.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, companyID string, req user.UpdateUserRequest) error {
	target, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if target.CompanyID != companyID {
		return user.ErrUserNotFound
	}

	if req.ManagerID != nil {
		if err := s.checkManager(ctx, companyID, *req.ManagerID); err != nil {
			return err
		}
	}

	return s.UserRepository.Update(ctx, req)
}

func (s *UserServiceImpl) checkManager(ctx context.Context, companyID, managerID string) error {
	manager, err := s.UserRepository.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.ErrManagerNotFound
		}
		return err
	}
	if manager.CompanyID != companyID {
		return user.ErrManagerNotFound
	}
	return nil
}
