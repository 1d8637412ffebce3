package postgresql

import (
	"context"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
)

type approvalStepRepositoryImpl struct {
	db *database.DB
}

func NewApprovalStepRepository(db *database.DB) approval.ApprovalStepRepository {
	return &approvalStepRepositoryImpl{db: db}
}

// GetByRuleID implements approval.ApprovalStepRepository.
func (r *approvalStepRepositoryImpl) GetByRuleID(ctx context.Context, ruleID string) ([]approval.ApprovalStep, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, rule_id, approver_id, step_order, created_at
		FROM approval_steps
		WHERE rule_id = $1
		ORDER BY step_order ASC
	`

	rows, err := q.Query(ctx, query, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []approval.ApprovalStep
	for rows.Next() {
		var s approval.ApprovalStep
		if err := rows.Scan(&s.ID, &s.RuleID, &s.ApproverID, &s.StepOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

// ReplaceForRule implements approval.ApprovalStepRepository. Delete and
// reinsert keeps the sequence exactly as submitted.
func (r *approvalStepRepositoryImpl) ReplaceForRule(ctx context.Context, ruleID string, steps []approval.ApprovalStep) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM approval_steps WHERE rule_id = $1`, ruleID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO approval_steps (rule_id, approver_id, step_order)
		VALUES ($1, $2, $3)
	`

	for _, s := range steps {
		if _, err := q.Exec(ctx, insertQuery, ruleID, s.ApproverID, s.StepOrder); err != nil {
			return err
		}
	}

	return nil
}
