package approval

import "github.com/expenseflow/expense-backend-go/internal/pkg/validator"

type StepInput struct {
	ApproverID string `json:"approver_id"`
}

// SaveRuleRequest replaces the company's rule and its step sequence in one
// shot. Steps with an empty approver are dropped before persisting, matching
// how a half-filled form row should behave.
type SaveRuleRequest struct {
	RuleType           *string     `json:"rule_type,omitempty"`
	PercentageRequired *int        `json:"percentage_required,omitempty"`
	SpecificApproverID *string     `json:"specific_approver_id,omitempty"`
	IsManagerApprover  bool        `json:"is_manager_approver"`
	Steps              []StepInput `json:"steps"`
}

func (r *SaveRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RuleType != nil && !validator.IsInSlice(*r.RuleType, []string{
		string(RuleTypePercentage),
		string(RuleTypeSpecificApprover),
		string(RuleTypeHybrid),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "rule_type",
			Message: "rule_type must be percentage, specific_approver or hybrid",
		})
	}

	needsPercentage := r.RuleType != nil &&
		(*r.RuleType == string(RuleTypePercentage) || *r.RuleType == string(RuleTypeHybrid))
	if needsPercentage {
		if r.PercentageRequired == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "percentage_required",
				Message: "percentage_required is required for percentage and hybrid rules",
			})
		} else if *r.PercentageRequired < 1 || *r.PercentageRequired > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "percentage_required",
				Message: "percentage_required must be between 1 and 100",
			})
		}
	}

	needsSpecific := r.RuleType != nil &&
		(*r.RuleType == string(RuleTypeSpecificApprover) || *r.RuleType == string(RuleTypeHybrid))
	if needsSpecific && (r.SpecificApproverID == nil || validator.IsEmpty(*r.SpecificApproverID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "specific_approver_id",
			Message: "specific_approver_id is required for specific_approver and hybrid rules",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// FilledSteps returns the non-empty step inputs in submitted order.
func (r *SaveRuleRequest) FilledSteps() []StepInput {
	steps := make([]StepInput, 0, len(r.Steps))
	for _, s := range r.Steps {
		if !validator.IsEmpty(s.ApproverID) {
			steps = append(steps, s)
		}
	}
	return steps
}

type StepResponse struct {
	ID         string `json:"id"`
	ApproverID string `json:"approver_id"`
	StepOrder  int    `json:"step_order"`
}

type RuleResponse struct {
	ID                 string         `json:"id"`
	RuleType           *RuleType      `json:"rule_type"`
	PercentageRequired *int           `json:"percentage_required,omitempty"`
	SpecificApproverID *string        `json:"specific_approver_id,omitempty"`
	IsManagerApprover  bool           `json:"is_manager_approver"`
	Steps              []StepResponse `json:"steps"`
}
