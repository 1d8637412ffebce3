package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expenseflow/expense-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestSaveRuleRequest_Validate_SequentialNeedsNothing(t *testing.T) {
	req := SaveRuleRequest{IsManagerApprover: true}
	assert.NoError(t, req.Validate())
}

func TestSaveRuleRequest_Validate_PercentageRequiresThreshold(t *testing.T) {
	req := SaveRuleRequest{RuleType: strPtr("percentage")}

	err := req.Validate()
	assert.Error(t, err)

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "percentage_required")
}

func TestSaveRuleRequest_Validate_PercentageOutOfRange(t *testing.T) {
	req := SaveRuleRequest{
		RuleType:           strPtr("percentage"),
		PercentageRequired: intPtr(150),
	}
	assert.Error(t, req.Validate())
}

func TestSaveRuleRequest_Validate_HybridRequiresBoth(t *testing.T) {
	req := SaveRuleRequest{RuleType: strPtr("hybrid")}

	err := req.Validate()
	assert.Error(t, err)

	var validationErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &validationErrs)
	details := validationErrs.ToMap()
	assert.Contains(t, details, "percentage_required")
	assert.Contains(t, details, "specific_approver_id")
}

func TestSaveRuleRequest_Validate_UnknownRuleType(t *testing.T) {
	req := SaveRuleRequest{RuleType: strPtr("unanimous")}
	assert.Error(t, req.Validate())
}

func TestSaveRuleRequest_FilledSteps_DropsEmptyRows(t *testing.T) {
	req := SaveRuleRequest{
		Steps: []StepInput{
			{ApproverID: "first"},
			{ApproverID: ""},
			{ApproverID: "  "},
			{ApproverID: "second"},
		},
	}

	filled := req.FilledSteps()
	assert.Len(t, filled, 2)
	assert.Equal(t, "first", filled[0].ApproverID)
	assert.Equal(t, "second", filled[1].ApproverID)
}
