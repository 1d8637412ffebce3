package postgresqltest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenseflow/expense-backend-go/internal/domain/auth"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/pkg/jwt"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
	authService "github.com/expenseflow/expense-backend-go/internal/service/auth"
	userService "github.com/expenseflow/expense-backend-go/internal/service/user"
)

func newAuthService(db *database.DB) auth.AuthService {
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")
	return authService.NewAuthService(db, userRepo, companyRepo, jwtService, jwtRepo)
}

func TestRegister_CreatesCompanyAndAdmin(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newAuthService(db)

	tokens, err := svc.Register(ctx, auth.RegisterRequest{
		Email:       "admin@acme.test",
		Password:    "password123",
		CompanyName: "Acme Corp",
		Country:     "United States",
		Currency:    "USD",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	userRepo := postgresql.NewUserRepository(db)
	admin, err := userRepo.GetByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)

	companyRepo := postgresql.NewCompanyRepository(db)
	companyData, err := companyRepo.GetByID(ctx, admin.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", companyData.Name)
	assert.Equal(t, "USD", companyData.DefaultCurrency)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newAuthService(db)

	req := auth.RegisterRequest{
		Email:       "admin@acme.test",
		Password:    "password123",
		CompanyName: "Acme Corp",
		Country:     "United States",
		Currency:    "USD",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestLogin_And_Refresh(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newAuthService(db)

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Email:       "admin@acme.test",
		Password:    "password123",
		CompanyName: "Acme Corp",
		Country:     "United States",
		Currency:    "USD",
	})
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "admin@acme.test",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	refreshed, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// After logout the refresh token stops working.
	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()
	svc := newAuthService(db)

	_, err := svc.Register(ctx, auth.RegisterRequest{
		Email:       "admin@acme.test",
		Password:    "password123",
		CompanyName: "Acme Corp",
		Country:     "United States",
		Currency:    "USD",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:    "admin@acme.test",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestUserService_CreateListUpdate(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()

	companyID := createTestCompany(t, ctx, db)
	createTestUser(t, ctx, db, companyID, "admin@acme.test", user.RoleAdmin, nil)
	manager := createTestUser(t, ctx, db, companyID, "manager@acme.test", user.RoleManager, nil)

	svc := userService.NewUserService(postgresql.NewUserRepository(db))

	created, err := svc.CreateUser(ctx, companyID, user.CreateUserRequest{
		Email:     "employee@acme.test",
		Password:  "password123",
		Role:      "employee",
		ManagerID: &manager.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, created.Role)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, manager.ID, *created.ManagerID)

	// Admin accounts stay out of the directory listing.
	listed, err := svc.ListCompanyUsers(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, u := range listed {
		assert.NotEqual(t, user.RoleAdmin, u.Role)
	}

	// Promote the employee and clear their manager.
	newRole := "manager"
	err = svc.UpdateUser(ctx, companyID, user.UpdateUserRequest{
		ID:           created.ID,
		Role:         &newRole,
		ClearManager: true,
	})
	require.NoError(t, err)

	listed, err = svc.ListCompanyUsers(ctx, companyID)
	require.NoError(t, err)
	for _, u := range listed {
		if u.ID == created.ID {
			assert.Equal(t, user.RoleManager, u.Role)
			assert.Nil(t, u.ManagerID)
		}
	}
}

func TestUserService_ManagerMustBeInCompany(t *testing.T) {
	db := requireTestDB(t)
	defer truncateAll(t, db)
	truncateAll(t, db)

	ctx := context.Background()

	companyID := createTestCompany(t, ctx, db)

	var otherCompanyID string
	err := db.QueryRow(ctx, `
		INSERT INTO companies (name, country, default_currency)
		VALUES ('Other Corp', 'Germany', 'EUR')
		RETURNING id
	`).Scan(&otherCompanyID)
	require.NoError(t, err)
	foreignManager := createTestUser(t, ctx, db, otherCompanyID, "boss@other.test", user.RoleManager, nil)

	svc := userService.NewUserService(postgresql.NewUserRepository(db))

	_, err = svc.CreateUser(ctx, companyID, user.CreateUserRequest{
		Email:     "employee@acme.test",
		Password:  "password123",
		Role:      "employee",
		ManagerID: &foreignManager.ID,
	})
	assert.ErrorIs(t, err, user.ErrManagerNotFound)
}
