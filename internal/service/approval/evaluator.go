package approval

import (
	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
)

// Evaluate decides whether the expense is approved once the final slot in the
// chain has acted. chain is the full approval chain after the acting
// approver's record was updated; actorID identifies who just acted.
//
// A nil rule type is plain sequential: reaching the end of the chain without
// a rejection means everyone approved. Conditional rules can leave the
// expense pending when their threshold is not met.
func Evaluate(rule approval.ApprovalRule, chain []expense.ExpenseApproval, actorID string) bool {
	if rule.RuleType == nil {
		return true
	}

	switch *rule.RuleType {
	case approval.RuleTypePercentage:
		return percentageMet(rule, chain)
	case approval.RuleTypeSpecificApprover:
		return specificApproverActed(rule, actorID)
	case approval.RuleTypeHybrid:
		return percentageMet(rule, chain) || specificApproverActed(rule, actorID)
	default:
		return true
	}
}

func percentageMet(rule approval.ApprovalRule, chain []expense.ExpenseApproval) bool {
	if rule.PercentageRequired == nil || len(chain) == 0 {
		return false
	}

	approved := 0
	for _, a := range chain {
		if a.Status == expense.ApprovalApproved {
			approved++
		}
	}

	return float64(approved)/float64(len(chain))*100 >= float64(*rule.PercentageRequired)
}

func specificApproverActed(rule approval.ApprovalRule, actorID string) bool {
	return rule.SpecificApproverID != nil && *rule.SpecificApproverID == actorID
}
