package expense

import "context"

type ExpenseService interface {
	// Submit creates the expense and materializes its approval chain from the
	// company rule as it stands right now.
	Submit(ctx context.Context, companyID, employeeID string, req CreateExpenseRequest) (ExpenseDetailResponse, error)
	ListMyExpenses(ctx context.Context, employeeID string) ([]ExpenseResponse, error)
	ListCompanyExpenses(ctx context.Context, companyID string) ([]ExpenseResponse, error)
	GetExpense(ctx context.Context, companyID, expenseID string) (ExpenseDetailResponse, error)
}

// DecisionService handles an approver acting on their pending slot.
type DecisionService interface {
	ListPendingApprovals(ctx context.Context, approverID string) ([]PendingApprovalResponse, error)
	Approve(ctx context.Context, companyID, expenseID, approverID string, req DecisionRequest) error
	Reject(ctx context.Context, companyID, expenseID, approverID string, req DecisionRequest) error
}
