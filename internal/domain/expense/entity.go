package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	StatusPending  ExpenseStatus = "pending"
	StatusApproved ExpenseStatus = "approved"
	StatusRejected ExpenseStatus = "rejected"
)

// Terminal reports whether the expense has reached a final decision.
func (s ExpenseStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
	ApprovalWaiting  ApprovalStatus = "waiting"
)

// Expense is a single claim. Amount stays in the currency the employee spent
// in; conversion to the company currency happens at read time.
type Expense struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Description string
	ExpenseDate time.Time
	Status      ExpenseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpenseApproval is one slot in the materialized approval chain. The chain is
// frozen at submission time: later rule edits never touch it.
type ExpenseApproval struct {
	ID         string
	ExpenseID  string
	ApproverID string
	StepOrder  int
	Status     ApprovalStatus
	Comments   *string
	ActionDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
