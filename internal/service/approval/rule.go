package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
)

type RuleServiceImpl struct {
	db *database.DB
	approval.ApprovalRuleRepository
	approval.ApprovalStepRepository
	user.UserRepository
}

func NewRuleService(db *database.DB, ruleRepository approval.ApprovalRuleRepository, stepRepository approval.ApprovalStepRepository, userRepository user.UserRepository) approval.ApprovalRuleService {
	return &RuleServiceImpl{
		db:                     db,
		ApprovalRuleRepository: ruleRepository,
		ApprovalStepRepository: stepRepository,
		UserRepository:         userRepository,
	}
}

// GetRule implements approval.ApprovalRuleService.
func (s *RuleServiceImpl) GetRule(ctx context.Context, companyID string) (approval.RuleResponse, error) {
	rule, err := s.ApprovalRuleRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return approval.RuleResponse{}, err
	}

	steps, err := s.ApprovalStepRepository.GetByRuleID(ctx, rule.ID)
	if err != nil {
		return approval.RuleResponse{}, fmt.Errorf("failed to get approval steps: %w", err)
	}

	return toRuleResponse(rule, steps), nil
}

// SaveRule implements approval.ApprovalRuleService. The rule row and the step
// sequence are replaced together; a failed step insert leaves the previous
// configuration intact.
func (s *RuleServiceImpl) SaveRule(ctx context.Context, companyID string, req approval.SaveRuleRequest) (approval.RuleResponse, error) {
	filled := req.FilledSteps()
	for _, step := range filled {
		if err := s.checkApprover(ctx, companyID, step.ApproverID); err != nil {
			return approval.RuleResponse{}, err
		}
	}
	if req.SpecificApproverID != nil {
		if err := s.checkApprover(ctx, companyID, *req.SpecificApproverID); err != nil {
			return approval.RuleResponse{}, err
		}
	}

	rule := approval.ApprovalRule{
		CompanyID:         companyID,
		IsManagerApprover: req.IsManagerApprover,
	}
	if req.RuleType != nil {
		rt := approval.RuleType(*req.RuleType)
		rule.RuleType = &rt
	}

	// Percentage and specific approver only persist for rule types that
	// read them. Stale values from a previous configuration must not
	// leak into the new one.
	if rule.RuleType != nil && (*rule.RuleType == approval.RuleTypePercentage || *rule.RuleType == approval.RuleTypeHybrid) {
		rule.PercentageRequired = req.PercentageRequired
	}
	if rule.RuleType != nil && (*rule.RuleType == approval.RuleTypeSpecificApprover || *rule.RuleType == approval.RuleTypeHybrid) {
		rule.SpecificApproverID = req.SpecificApproverID
	}

	var saved approval.ApprovalRule
	var savedSteps []approval.ApprovalStep
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		saved, err = s.ApprovalRuleRepository.Upsert(txCtx, rule)
		if err != nil {
			return fmt.Errorf("failed to upsert approval rule: %w", err)
		}

		steps := make([]approval.ApprovalStep, 0, len(filled))
		for i, input := range filled {
			steps = append(steps, approval.ApprovalStep{
				RuleID:     saved.ID,
				ApproverID: input.ApproverID,
				StepOrder:  i + 1,
			})
		}

		if err := s.ApprovalStepRepository.ReplaceForRule(txCtx, saved.ID, steps); err != nil {
			return fmt.Errorf("failed to replace approval steps: %w", err)
		}

		savedSteps, err = s.ApprovalStepRepository.GetByRuleID(txCtx, saved.ID)
		if err != nil {
			return fmt.Errorf("failed to reload approval steps: %w", err)
		}
		return nil
	})
	if err != nil {
		return approval.RuleResponse{}, err
	}

	return toRuleResponse(saved, savedSteps), nil
}

func (s *RuleServiceImpl) checkApprover(ctx context.Context, companyID, approverID string) error {
	approver, err := s.UserRepository.GetByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return approval.ErrApproverNotFound
		}
		return err
	}
	if approver.CompanyID != companyID {
		return approval.ErrApproverNotFound
	}
	if !approver.CanApprove() {
		return approval.ErrApproverNotAllowed
	}
	return nil
}

func toRuleResponse(rule approval.ApprovalRule, steps []approval.ApprovalStep) approval.RuleResponse {
	stepResponses := make([]approval.StepResponse, 0, len(steps))
	for _, s := range steps {
		stepResponses = append(stepResponses, approval.StepResponse{
			ID:         s.ID,
			ApproverID: s.ApproverID,
			StepOrder:  s.StepOrder,
		})
	}

	return approval.RuleResponse{
		ID:                 rule.ID,
		RuleType:           rule.RuleType,
		PercentageRequired: rule.PercentageRequired,
		SpecificApproverID: rule.SpecificApproverID,
		IsManagerApprover:  rule.IsManagerApprover,
		Steps:              stepResponses,
	}
}
