package approval

import "context"

type ApprovalRuleService interface {
	GetRule(ctx context.Context, companyID string) (RuleResponse, error)
	// SaveRule upserts the company rule and replaces its step sequence.
	SaveRule(ctx context.Context, companyID string, req SaveRuleRequest) (RuleResponse, error)
}
