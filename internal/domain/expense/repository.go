package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	GetByID(ctx context.Context, id string) (Expense, error)

	// GetByIDForUpdate locks the expense row for the duration of the
	// surrounding transaction so concurrent decisions serialize.
	GetByIDForUpdate(ctx context.Context, id string) (Expense, error)

	GetByEmployeeID(ctx context.Context, employeeID string) ([]Expense, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Expense, error)
	UpdateStatus(ctx context.Context, id string, status ExpenseStatus) error
}

type ExpenseApprovalRepository interface {
	CreateBatch(ctx context.Context, approvals []ExpenseApproval) error
	GetByExpenseID(ctx context.Context, expenseID string) ([]ExpenseApproval, error)

	// GetByExpenseAndApprover returns the approver's actionable slot for the
	// expense, preferring a pending one when they hold several.
	GetByExpenseAndApprover(ctx context.Context, expenseID, approverID string) (ExpenseApproval, error)

	// GetPendingByApproverID lists actionable slots newest first.
	GetPendingByApproverID(ctx context.Context, approverID string) ([]PendingApprovalRow, error)
	UpdateDecision(ctx context.Context, id string, status ApprovalStatus, comments *string) error
	UpdateStatus(ctx context.Context, id string, status ApprovalStatus) error
}

// PendingApprovalRow joins the approval slot with its expense for queue
// listings.
type PendingApprovalRow struct {
	Approval      ExpenseApproval
	Expense       Expense
	EmployeeEmail string
}
