package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

const expenseColumns = `id, company_id, employee_id, amount, currency, category,
	   description, expense_date, status, created_at, updated_at`

func scanExpense(row pgx.Row) (expense.Expense, error) {
	var e expense.Expense
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.EmployeeID,
		&e.Amount,
		&e.Currency,
		&e.Category,
		&e.Description,
		&e.ExpenseDate,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO expenses (company_id, employee_id, amount, currency, category, description, expense_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + expenseColumns

	created, err := scanExpense(q.QueryRow(ctx, query,
		e.CompanyID,
		e.EmployeeID,
		e.Amount,
		e.Currency,
		e.Category,
		e.Description,
		e.ExpenseDate,
		e.Status,
	))
	if err != nil {
		return expense.Expense{}, err
	}

	return created, nil
}

// GetByID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByID(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	found, err := scanExpense(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, err
	}

	return found, nil
}

// GetByIDForUpdate implements expense.ExpenseRepository. Must run inside a
// transaction; the row lock serializes concurrent approval decisions.
func (r *expenseRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 FOR UPDATE`

	found, err := scanExpense(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.Expense{}, expense.ErrExpenseNotFound
		}
		return expense.Expense{}, err
	}

	return found, nil
}

// GetByEmployeeID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE employee_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// GetByCompanyID implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]expense.Expense, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE company_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]expense.Expense, error) {
	var expenses []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateStatus implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) UpdateStatus(ctx context.Context, id string, status expense.ExpenseStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE expenses
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return expense.ErrExpenseNotFound
		}
		return err
	}

	return nil
}
