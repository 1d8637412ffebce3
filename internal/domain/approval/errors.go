package approval

import "errors"

var (
	ErrRuleNotFound       = errors.New("approval rule not found")
	ErrApproverNotFound   = errors.New("approver not found in company")
	ErrApproverNotAllowed = errors.New("approver must have the manager or admin role")
)
