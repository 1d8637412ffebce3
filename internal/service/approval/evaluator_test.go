package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
)

func ruleTypePtr(rt approval.RuleType) *approval.RuleType {
	return &rt
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}

func chainWithStatuses(statuses ...expense.ApprovalStatus) []expense.ExpenseApproval {
	chain := make([]expense.ExpenseApproval, 0, len(statuses))
	for i, status := range statuses {
		chain = append(chain, expense.ExpenseApproval{
			ApproverID: "approver-" + string(rune('a'+i)),
			StepOrder:  i + 1,
			Status:     status,
		})
	}
	return chain
}

func TestEvaluate_SequentialRule_ApprovesAtEndOfChain(t *testing.T) {
	rule := approval.ApprovalRule{RuleType: nil}
	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalApproved)

	assert.True(t, Evaluate(rule, chain, "approver-b"))
}

func TestEvaluate_PercentageRule_Met(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypePercentage),
		PercentageRequired: intPtr(60),
	}

	// 2 of 3 approved = 66.7%, above the 60% bar.
	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalApproved, expense.ApprovalPending)

	assert.True(t, Evaluate(rule, chain, "approver-c"))
}

func TestEvaluate_PercentageRule_NotMet(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypePercentage),
		PercentageRequired: intPtr(60),
	}

	// 1 of 3 approved = 33.3%.
	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalPending, expense.ApprovalPending)

	assert.False(t, Evaluate(rule, chain, "approver-c"))
}

func TestEvaluate_PercentageRule_ExactThreshold(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypePercentage),
		PercentageRequired: intPtr(50),
	}

	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalPending)

	assert.True(t, Evaluate(rule, chain, "approver-b"))
}

func TestEvaluate_PercentageRule_MissingThresholdNeverApproves(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType: ruleTypePtr(approval.RuleTypePercentage),
	}

	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalApproved)

	assert.False(t, Evaluate(rule, chain, "approver-b"))
}

func TestEvaluate_SpecificApproverRule(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypeSpecificApprover),
		SpecificApproverID: strPtr("cfo-id"),
	}

	chain := chainWithStatuses(expense.ApprovalApproved)

	assert.True(t, Evaluate(rule, chain, "cfo-id"))
	assert.False(t, Evaluate(rule, chain, "someone-else"))
}

func TestEvaluate_HybridRule_EitherConditionApproves(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypeHybrid),
		PercentageRequired: intPtr(100),
		SpecificApproverID: strPtr("cfo-id"),
	}

	// Percentage not met (1 of 2), but the specific approver acted.
	chain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalPending)
	assert.True(t, Evaluate(rule, chain, "cfo-id"))

	// Neither condition met.
	assert.False(t, Evaluate(rule, chain, "approver-a"))

	// Percentage met without the specific approver.
	fullChain := chainWithStatuses(expense.ApprovalApproved, expense.ApprovalApproved)
	assert.True(t, Evaluate(rule, fullChain, "approver-b"))
}

func TestEvaluate_EmptyChain_PercentageNotMet(t *testing.T) {
	rule := approval.ApprovalRule{
		RuleType:           ruleTypePtr(approval.RuleTypePercentage),
		PercentageRequired: intPtr(1),
	}

	assert.False(t, Evaluate(rule, nil, "anyone"))
}
