package expense

import "errors"

var (
	ErrExpenseNotFound          = errors.New("expense not found")
	ErrApprovalNotFound         = errors.New("no pending approval assigned to this approver")
	ErrApprovalNotActionable    = errors.New("approval is not in a pending state")
	ErrExpenseAlreadyFinalized  = errors.New("expense has already been approved or rejected")
	ErrExpenseForbidden         = errors.New("expense belongs to another company")
	ErrCurrencyConversionFailed = errors.New("could not convert amount to company currency")
)
