package user

import "context"

type UserService interface {
	// ListCompanyUsers returns every profile in the admin's company.
	ListCompanyUsers(ctx context.Context, companyID string) ([]UserResponse, error)
	CreateUser(ctx context.Context, companyID string, req CreateUserRequest) (UserResponse, error)
	UpdateUser(ctx context.Context, companyID string, req UpdateUserRequest) error
}
