package user

import "context"

// UserRepository - interface for the users (profiles) table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
