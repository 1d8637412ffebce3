package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
)

type approvalRuleRepositoryImpl struct {
	db *database.DB
}

func NewApprovalRuleRepository(db *database.DB) approval.ApprovalRuleRepository {
	return &approvalRuleRepositoryImpl{db: db}
}

// GetByCompanyID implements approval.ApprovalRuleRepository.
func (r *approvalRuleRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (approval.ApprovalRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, rule_type, percentage_required, specific_approver_id,
			   is_manager_approver, created_at, updated_at
		FROM approval_rules
		WHERE company_id = $1
	`

	var found approval.ApprovalRule
	err := q.QueryRow(ctx, query, companyID).Scan(
		&found.ID,
		&found.CompanyID,
		&found.RuleType,
		&found.PercentageRequired,
		&found.SpecificApproverID,
		&found.IsManagerApprover,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return approval.ApprovalRule{}, approval.ErrRuleNotFound
		}
		return approval.ApprovalRule{}, err
	}

	return found, nil
}

// Upsert implements approval.ApprovalRuleRepository. One rule per company,
// keyed on company_id.
func (r *approvalRuleRepositoryImpl) Upsert(ctx context.Context, rule approval.ApprovalRule) (approval.ApprovalRule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_rules (company_id, rule_type, percentage_required, specific_approver_id, is_manager_approver)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE
		SET rule_type = EXCLUDED.rule_type,
			percentage_required = EXCLUDED.percentage_required,
			specific_approver_id = EXCLUDED.specific_approver_id,
			is_manager_approver = EXCLUDED.is_manager_approver,
			updated_at = NOW()
		RETURNING id, company_id, rule_type, percentage_required, specific_approver_id,
				  is_manager_approver, created_at, updated_at
	`

	var saved approval.ApprovalRule
	err := q.QueryRow(ctx, query,
		rule.CompanyID,
		rule.RuleType,
		rule.PercentageRequired,
		rule.SpecificApproverID,
		rule.IsManagerApprover,
	).Scan(
		&saved.ID,
		&saved.CompanyID,
		&saved.RuleType,
		&saved.PercentageRequired,
		&saved.SpecificApproverID,
		&saved.IsManagerApprover,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return approval.ApprovalRule{}, err
	}

	return saved, nil
}
