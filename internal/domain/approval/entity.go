package approval

import "time"

// RuleType selects how the chain is evaluated once its last step acts.
// A nil rule type means plain sequential: every approver must approve.
type RuleType string

const (
	RuleTypePercentage       RuleType = "percentage"
	RuleTypeSpecificApprover RuleType = "specific_approver"
	RuleTypeHybrid           RuleType = "hybrid"
)

// ApprovalRule is the single per-company routing policy. Editing it only
// affects expenses submitted afterwards.
type ApprovalRule struct {
	ID                 string
	CompanyID          string
	RuleType           *RuleType
	PercentageRequired *int
	SpecificApproverID *string
	IsManagerApprover  bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ApprovalStep is one configured approver in the rule's ordered sequence.
type ApprovalStep struct {
	ID         string
	RuleID     string
	ApproverID string
	StepOrder  int
	CreatedAt  time.Time
}
