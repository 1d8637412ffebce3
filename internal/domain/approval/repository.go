package approval

import "context"

type ApprovalRuleRepository interface {
	// GetByCompanyID returns the company's single rule, or ErrRuleNotFound.
	GetByCompanyID(ctx context.Context, companyID string) (ApprovalRule, error)
	Upsert(ctx context.Context, r ApprovalRule) (ApprovalRule, error)
}

type ApprovalStepRepository interface {
	GetByRuleID(ctx context.Context, ruleID string) ([]ApprovalStep, error)
	// ReplaceForRule deletes the rule's steps and inserts the given set.
	ReplaceForRule(ctx context.Context, ruleID string, steps []ApprovalStep) error
}
