package postgresql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
)

type expenseApprovalRepositoryImpl struct {
	db *database.DB
}

func NewExpenseApprovalRepository(db *database.DB) expense.ExpenseApprovalRepository {
	return &expenseApprovalRepositoryImpl{db: db}
}

// CreateBatch implements expense.ExpenseApprovalRepository. Inserts the whole
// materialized chain in one round trip.
func (r *expenseApprovalRepositoryImpl) CreateBatch(ctx context.Context, approvals []expense.ExpenseApproval) error {
	if len(approvals) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expense_approvals (id, expense_id, approver_id, step_order, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, a := range approvals {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if _, err := q.Exec(ctx, query, a.ID, a.ExpenseID, a.ApproverID, a.StepOrder, a.Status); err != nil {
			return err
		}
	}

	return nil
}

// GetByExpenseID implements expense.ExpenseApprovalRepository. Rows come back
// in chain order.
func (r *expenseApprovalRepositoryImpl) GetByExpenseID(ctx context.Context, expenseID string) ([]expense.ExpenseApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, expense_id, approver_id, step_order, status, comments, action_date, created_at, updated_at
		FROM expense_approvals
		WHERE expense_id = $1
		ORDER BY step_order ASC
	`

	rows, err := q.Query(ctx, query, expenseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var approvals []expense.ExpenseApproval
	for rows.Next() {
		var a expense.ExpenseApproval
		if err := rows.Scan(
			&a.ID,
			&a.ExpenseID,
			&a.ApproverID,
			&a.StepOrder,
			&a.Status,
			&a.Comments,
			&a.ActionDate,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		approvals = append(approvals, a)
	}

	return approvals, rows.Err()
}

// GetByExpenseAndApprover implements expense.ExpenseApprovalRepository.
func (r *expenseApprovalRepositoryImpl) GetByExpenseAndApprover(ctx context.Context, expenseID, approverID string) (expense.ExpenseApproval, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, expense_id, approver_id, step_order, status, comments, action_date, created_at, updated_at
		FROM expense_approvals
		WHERE expense_id = $1 AND approver_id = $2
		ORDER BY (status = 'pending') DESC, step_order ASC
		LIMIT 1
	`

	var a expense.ExpenseApproval
	err := q.QueryRow(ctx, query, expenseID, approverID).Scan(
		&a.ID,
		&a.ExpenseID,
		&a.ApproverID,
		&a.StepOrder,
		&a.Status,
		&a.Comments,
		&a.ActionDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.ExpenseApproval{}, expense.ErrApprovalNotFound
		}
		return expense.ExpenseApproval{}, err
	}

	return a, nil
}

// GetPendingByApproverID implements expense.ExpenseApprovalRepository. Only
// slots whose turn has come (status pending) appear in the queue.
func (r *expenseApprovalRepositoryImpl) GetPendingByApproverID(ctx context.Context, approverID string) ([]expense.PendingApprovalRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ea.id, ea.expense_id, ea.approver_id, ea.step_order, ea.status, ea.comments,
			   ea.action_date, ea.created_at, ea.updated_at,
			   e.id, e.company_id, e.employee_id, e.amount, e.currency, e.category,
			   e.description, e.expense_date, e.status, e.created_at, e.updated_at,
			   u.email
		FROM expense_approvals ea
		JOIN expenses e ON e.id = ea.expense_id
		JOIN users u ON u.id = e.employee_id
		WHERE ea.approver_id = $1 AND ea.status = 'pending' AND e.status = 'pending'
		ORDER BY ea.created_at DESC
	`

	rows, err := q.Query(ctx, query, approverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []expense.PendingApprovalRow
	for rows.Next() {
		var row expense.PendingApprovalRow
		if err := rows.Scan(
			&row.Approval.ID,
			&row.Approval.ExpenseID,
			&row.Approval.ApproverID,
			&row.Approval.StepOrder,
			&row.Approval.Status,
			&row.Approval.Comments,
			&row.Approval.ActionDate,
			&row.Approval.CreatedAt,
			&row.Approval.UpdatedAt,
			&row.Expense.ID,
			&row.Expense.CompanyID,
			&row.Expense.EmployeeID,
			&row.Expense.Amount,
			&row.Expense.Currency,
			&row.Expense.Category,
			&row.Expense.Description,
			&row.Expense.ExpenseDate,
			&row.Expense.Status,
			&row.Expense.CreatedAt,
			&row.Expense.UpdatedAt,
			&row.EmployeeEmail,
		); err != nil {
			return nil, err
		}
		pending = append(pending, row)
	}

	return pending, rows.Err()
}

// UpdateDecision implements expense.ExpenseApprovalRepository. Records an
// approver's verdict together with their comment.
func (r *expenseApprovalRepositoryImpl) UpdateDecision(ctx context.Context, id string, status expense.ApprovalStatus, comments *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expense_approvals
		SET status = $1, comments = $2, action_date = NOW(), updated_at = NOW()
		WHERE id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, comments, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.ErrApprovalNotFound
		}
		return err
	}

	return nil
}

// UpdateStatus implements expense.ExpenseApprovalRepository. Used to flip the
// next waiting slot to pending without touching comments.
func (r *expenseApprovalRepositoryImpl) UpdateStatus(ctx context.Context, id string, status expense.ApprovalStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expense_approvals
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.ErrApprovalNotFound
		}
		return err
	}

	return nil
}
