package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/company"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/domain/user"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
)

type ExpenseServiceImpl struct {
	db *database.DB
	expense.ExpenseRepository
	expense.ExpenseApprovalRepository
	approval.ApprovalRuleRepository
	approval.ApprovalStepRepository
	user.UserRepository
	company.CompanyRepository
	exchange.Client
}

func NewExpenseService(
	db *database.DB,
	expenseRepository expense.ExpenseRepository,
	approvalRepository expense.ExpenseApprovalRepository,
	ruleRepository approval.ApprovalRuleRepository,
	stepRepository approval.ApprovalStepRepository,
	userRepository user.UserRepository,
	companyRepository company.CompanyRepository,
	exchangeClient exchange.Client,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		db:                        db,
		ExpenseRepository:         expenseRepository,
		ExpenseApprovalRepository: approvalRepository,
		ApprovalRuleRepository:    ruleRepository,
		ApprovalStepRepository:    stepRepository,
		UserRepository:            userRepository,
		CompanyRepository:         companyRepository,
		Client:                    exchangeClient,
	}
}

// Submit implements expense.ExpenseService. The expense and its full approval
// chain are created in one transaction; the chain snapshots the company rule
// as configured at this moment and later rule edits never touch it.
func (s *ExpenseServiceImpl) Submit(ctx context.Context, companyID, employeeID string, req expense.CreateExpenseRequest) (expense.ExpenseDetailResponse, error) {
	employee, err := s.UserRepository.GetByID(ctx, employeeID)
	if err != nil {
		return expense.ExpenseDetailResponse{}, err
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return expense.ExpenseDetailResponse{}, fmt.Errorf("failed to parse expense date: %w", err)
	}

	var created expense.Expense
	var chain []expense.ExpenseApproval
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.ExpenseRepository.Create(txCtx, expense.Expense{
			CompanyID:   companyID,
			EmployeeID:  employeeID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Category:    req.Category,
			Description: req.Description,
			ExpenseDate: expenseDate,
			Status:      expense.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create expense: %w", err)
		}

		approvals, err := s.materializeChain(txCtx, companyID, employee, created.ID)
		if err != nil {
			return err
		}

		if len(approvals) == 0 {
			// Nothing routes this expense: it stays pending until an
			// admin configures a rule and intervenes.
			slog.Warn("expense submitted with no approval chain",
				slog.String("expense_id", created.ID),
				slog.String("company_id", companyID),
			)
			return nil
		}

		if err := s.ExpenseApprovalRepository.CreateBatch(txCtx, approvals); err != nil {
			return fmt.Errorf("failed to create approval chain: %w", err)
		}

		chain, err = s.ExpenseApprovalRepository.GetByExpenseID(txCtx, created.ID)
		if err != nil {
			return fmt.Errorf("failed to reload approval chain: %w", err)
		}
		return nil
	})
	if err != nil {
		return expense.ExpenseDetailResponse{}, err
	}

	detail := expense.ExpenseDetailResponse{
		ExpenseResponse: s.toResponse(ctx, created),
	}
	for _, a := range chain {
		detail.Approvals = append(detail.Approvals, toApprovalRecord(a))
	}
	return detail, nil
}

// materializeChain builds the ordered approval slots for a freshly submitted
// expense. The employee's manager goes first when the rule asks for it, then
// the configured steps shifted past it. Only the first slot starts pending.
func (s *ExpenseServiceImpl) materializeChain(ctx context.Context, companyID string, employee user.User, expenseID string) ([]expense.ExpenseApproval, error) {
	rule, err := s.ApprovalRuleRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, approval.ErrRuleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load approval rule: %w", err)
	}

	steps, err := s.ApprovalStepRepository.GetByRuleID(ctx, rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load approval steps: %w", err)
	}

	var approvals []expense.ExpenseApproval

	// A manager slot takes step 0 and shifts every configured step by one.
	offset := 0
	if rule.IsManagerApprover && employee.ManagerID != nil {
		approvals = append(approvals, expense.ExpenseApproval{
			ExpenseID:  expenseID,
			ApproverID: *employee.ManagerID,
			StepOrder:  0,
		})
		offset = 1
	}

	for _, step := range steps {
		approvals = append(approvals, expense.ExpenseApproval{
			ExpenseID:  expenseID,
			ApproverID: step.ApproverID,
			StepOrder:  step.StepOrder + offset,
		})
	}

	for i := range approvals {
		if i == 0 {
			approvals[i].Status = expense.ApprovalPending
		} else {
			approvals[i].Status = expense.ApprovalWaiting
		}
	}

	return approvals, nil
}

// ListMyExpenses implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListMyExpenses(ctx context.Context, employeeID string) ([]expense.ExpenseResponse, error) {
	expenses, err := s.ExpenseRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, s.toResponse(ctx, e))
	}
	return responses, nil
}

// ListCompanyExpenses implements expense.ExpenseService.
func (s *ExpenseServiceImpl) ListCompanyExpenses(ctx context.Context, companyID string) ([]expense.ExpenseResponse, error) {
	expenses, err := s.ExpenseRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company expenses: %w", err)
	}

	responses := make([]expense.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, s.toResponse(ctx, e))
	}
	return responses, nil
}

// GetExpense implements expense.ExpenseService.
func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, companyID, expenseID string) (expense.ExpenseDetailResponse, error) {
	e, err := s.ExpenseRepository.GetByID(ctx, expenseID)
	if err != nil {
		return expense.ExpenseDetailResponse{}, err
	}
	if e.CompanyID != companyID {
		return expense.ExpenseDetailResponse{}, expense.ErrExpenseForbidden
	}

	chain, err := s.ExpenseApprovalRepository.GetByExpenseID(ctx, expenseID)
	if err != nil {
		return expense.ExpenseDetailResponse{}, fmt.Errorf("failed to load approval chain: %w", err)
	}

	detail := expense.ExpenseDetailResponse{
		ExpenseResponse: s.toResponse(ctx, e),
	}
	for _, a := range chain {
		record := toApprovalRecord(a)
		if approver, err := s.UserRepository.GetByID(ctx, a.ApproverID); err == nil {
			record.ApproverEmail = approver.Email
		}
		detail.Approvals = append(detail.Approvals, record)
	}
	return detail, nil
}

// toResponse converts the amount into the company currency when a rate is
// available. The original amount and currency are always preserved.
func (s *ExpenseServiceImpl) toResponse(ctx context.Context, e expense.Expense) expense.ExpenseResponse {
	resp := expense.ExpenseResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Description: e.Description,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		Status:      e.Status,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	companyData, err := s.CompanyRepository.GetByID(ctx, e.CompanyID)
	if err != nil {
		return resp
	}
	resp.CompanyCurrency = companyData.DefaultCurrency

	converted, err := s.Client.Convert(ctx, e.Amount, e.Currency, companyData.DefaultCurrency)
	if err != nil {
		slog.Warn("currency conversion failed",
			slog.String("expense_id", e.ID),
			slog.String("from", e.Currency),
			slog.String("to", companyData.DefaultCurrency),
			slog.Any("error", err),
		)
		return resp
	}
	resp.ConvertedAmount = &converted
	return resp
}

func toApprovalRecord(a expense.ExpenseApproval) expense.ApprovalRecordResponse {
	record := expense.ApprovalRecordResponse{
		ID:         a.ID,
		ApproverID: a.ApproverID,
		StepOrder:  a.StepOrder,
		Status:     a.Status,
		Comments:   a.Comments,
	}
	if a.ActionDate != nil {
		actedAt := a.ActionDate.Format(time.RFC3339)
		record.ActionDate = &actedAt
	}
	return record
}
