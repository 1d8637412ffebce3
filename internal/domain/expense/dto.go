package expense

import (
	"github.com/shopspring/decimal"

	"github.com/expenseflow/expense-backend-go/internal/pkg/validator"
)

type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if !validator.IsValidCurrencyCode(r.Currency) {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency must be a three-letter ISO 4217 code",
		})
	}

	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	if validator.IsEmpty(r.ExpenseDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "expense_date",
			Message: "expense_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "expense_date",
			Message: "expense_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionRequest struct {
	Comments *string `json:"comments,omitempty"`
}

type ExpenseResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
	Status      ExpenseStatus   `json:"status"`
	CreatedAt   string          `json:"created_at"`

	// ConvertedAmount is the amount in the company's default currency. Nil
	// when the rate lookup failed; the original amount is always present.
	ConvertedAmount *decimal.Decimal `json:"converted_amount,omitempty"`
	CompanyCurrency string           `json:"company_currency,omitempty"`
}

type ApprovalRecordResponse struct {
	ID            string         `json:"id"`
	ApproverID    string         `json:"approver_id"`
	ApproverEmail string         `json:"approver_email,omitempty"`
	StepOrder     int            `json:"step_order"`
	Status        ApprovalStatus `json:"status"`
	Comments      *string        `json:"comments,omitempty"`
	ActionDate    *string        `json:"action_date,omitempty"`
}

type ExpenseDetailResponse struct {
	ExpenseResponse
	Approvals []ApprovalRecordResponse `json:"approvals"`
}

// PendingApprovalResponse is one row in an approver's queue.
type PendingApprovalResponse struct {
	ApprovalID    string          `json:"approval_id"`
	StepOrder     int             `json:"step_order"`
	ExpenseID     string          `json:"expense_id"`
	EmployeeEmail string          `json:"employee_email"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	ExpenseDate   string          `json:"expense_date"`

	ConvertedAmount *decimal.Decimal `json:"converted_amount,omitempty"`
	CompanyCurrency string           `json:"company_currency,omitempty"`
}
