package response

import (
	"errors"
	"net/http"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/auth"
	"github.com/expenseflow/expense-backend-go/internal/domain/company"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
	"github.com/expenseflow/expense-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrRefreshCookieAbsent):
		Unauthorized(w, "Refresh token cookie not found")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		NotFound(w, "No account registered for this Google email")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerNotFound):
		BadRequest(w, "Assigned manager not found in company", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Expense domain errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrExpenseForbidden):
		Forbidden(w, "Expense belongs to another company")
	case errors.Is(err, expense.ErrApprovalNotFound):
		NotFound(w, "No approval assigned to this approver")
	case errors.Is(err, expense.ErrApprovalNotActionable):
		Conflict(w, "Approval is not awaiting this approver")
	case errors.Is(err, expense.ErrExpenseAlreadyFinalized):
		Conflict(w, "Expense has already been approved or rejected")

	// Approval rule domain errors
	case errors.Is(err, approval.ErrRuleNotFound):
		NotFound(w, "Approval rule not configured")
	case errors.Is(err, approval.ErrApproverNotFound):
		BadRequest(w, "Approver not found in company", nil)
	case errors.Is(err, approval.ErrApproverNotAllowed):
		BadRequest(w, "Approver must have the manager or admin role", nil)

	// External rate lookups
	case errors.Is(err, exchange.ErrRateNotFound):
		BadGateway(w, "Exchange rate unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
