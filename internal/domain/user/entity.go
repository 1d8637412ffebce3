package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Company admin - full access, configures approval rules
	RoleManager  Role = "manager"  // Can approve expenses routed to them
	RoleEmployee Role = "employee" // Submits expense claims
)

// User is one profile per authenticated identity. Role is fixed per account
// except explicit admin edits.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash *string
	Role         Role
	ManagerID    *string

	OAuthProvider   *string
	OAuthProviderID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin checks if user administers the company
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can appear in an approval chain
func (u *User) CanApprove() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
