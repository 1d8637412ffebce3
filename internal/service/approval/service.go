package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/approval"
	"github.com/expenseflow/expense-backend-go/internal/domain/company"
	"github.com/expenseflow/expense-backend-go/internal/domain/expense"
	"github.com/expenseflow/expense-backend-go/internal/pkg/database"
	"github.com/expenseflow/expense-backend-go/internal/pkg/exchange"
	"github.com/expenseflow/expense-backend-go/internal/repository/postgresql"
)

type DecisionServiceImpl struct {
	db *database.DB
	expense.ExpenseRepository
	expense.ExpenseApprovalRepository
	approval.ApprovalRuleRepository
	company.CompanyRepository
	exchange.Client
}

func NewDecisionService(db *database.DB, expenseRepository expense.ExpenseRepository, approvalRepository expense.ExpenseApprovalRepository, ruleRepository approval.ApprovalRuleRepository, companyRepository company.CompanyRepository, exchangeClient exchange.Client) expense.DecisionService {
	return &DecisionServiceImpl{
		db:                        db,
		ExpenseRepository:         expenseRepository,
		ExpenseApprovalRepository: approvalRepository,
		ApprovalRuleRepository:    ruleRepository,
		CompanyRepository:         companyRepository,
		Client:                    exchangeClient,
	}
}

// ListPendingApprovals implements expense.DecisionService. Amounts are
// converted to the approver's company currency for display; a failed rate
// lookup degrades to the original currency only.
func (s *DecisionServiceImpl) ListPendingApprovals(ctx context.Context, approverID string) ([]expense.PendingApprovalResponse, error) {
	rows, err := s.ExpenseApprovalRepository.GetPendingByApproverID(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}

	responses := make([]expense.PendingApprovalResponse, 0, len(rows))
	for _, row := range rows {
		resp := expense.PendingApprovalResponse{
			ApprovalID:    row.Approval.ID,
			StepOrder:     row.Approval.StepOrder,
			ExpenseID:     row.Expense.ID,
			EmployeeEmail: row.EmployeeEmail,
			Amount:        row.Expense.Amount,
			Currency:      row.Expense.Currency,
			Category:      row.Expense.Category,
			Description:   row.Expense.Description,
			ExpenseDate:   row.Expense.ExpenseDate.Format("2006-01-02"),
		}

		companyData, err := s.CompanyRepository.GetByID(ctx, row.Expense.CompanyID)
		if err == nil {
			resp.CompanyCurrency = companyData.DefaultCurrency
			converted, convErr := s.Client.Convert(ctx, row.Expense.Amount, row.Expense.Currency, companyData.DefaultCurrency)
			if convErr == nil {
				resp.ConvertedAmount = &converted
			} else {
				slog.Warn("currency conversion failed for pending approval",
					slog.String("expense_id", row.Expense.ID),
					slog.String("from", row.Expense.Currency),
					slog.String("to", companyData.DefaultCurrency),
					slog.Any("error", convErr),
				)
			}
		}

		responses = append(responses, resp)
	}

	return responses, nil
}

// Approve implements expense.DecisionService. The whole decision runs inside
// one transaction with the expense row locked, so two approvers acting at
// once serialize and the loser sees the updated chain.
func (s *DecisionServiceImpl) Approve(ctx context.Context, companyID, expenseID, approverID string, req expense.DecisionRequest) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		expenseData, approvalSlot, err := s.lockActionable(txCtx, companyID, expenseID, approverID)
		if err != nil {
			return err
		}

		if err := s.ExpenseApprovalRepository.UpdateDecision(txCtx, approvalSlot.ID, expense.ApprovalApproved, req.Comments); err != nil {
			return fmt.Errorf("failed to record approval: %w", err)
		}

		chain, err := s.ExpenseApprovalRepository.GetByExpenseID(txCtx, expenseID)
		if err != nil {
			return fmt.Errorf("failed to load approval chain: %w", err)
		}

		// Someone later in the chain still has to act: activate the next
		// waiting slot and stop.
		for _, slot := range chain {
			if slot.StepOrder > approvalSlot.StepOrder && slot.Status == expense.ApprovalWaiting {
				if err := s.ExpenseApprovalRepository.UpdateStatus(txCtx, slot.ID, expense.ApprovalPending); err != nil {
					return fmt.Errorf("failed to activate next approval step: %w", err)
				}
				return nil
			}
		}

		// Last slot acted: the rule decides the final status.
		rule, err := s.ApprovalRuleRepository.GetByCompanyID(txCtx, expenseData.CompanyID)
		if err != nil && !errors.Is(err, approval.ErrRuleNotFound) {
			return fmt.Errorf("failed to load approval rule: %w", err)
		}

		if Evaluate(rule, chain, approverID) {
			if err := s.ExpenseRepository.UpdateStatus(txCtx, expenseID, expense.StatusApproved); err != nil {
				return fmt.Errorf("failed to approve expense: %w", err)
			}
			return nil
		}

		// Conditional rule not satisfied and nobody is left to act. The
		// expense stays pending until an admin intervenes.
		slog.Warn("approval chain exhausted without meeting rule",
			slog.String("expense_id", expenseID),
			slog.String("company_id", expenseData.CompanyID),
		)
		return nil
	})
}

// Reject implements expense.DecisionService. A single rejection is terminal
// regardless of the rule configuration.
func (s *DecisionServiceImpl) Reject(ctx context.Context, companyID, expenseID, approverID string, req expense.DecisionRequest) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		_, approvalSlot, err := s.lockActionable(txCtx, companyID, expenseID, approverID)
		if err != nil {
			return err
		}

		if err := s.ExpenseApprovalRepository.UpdateDecision(txCtx, approvalSlot.ID, expense.ApprovalRejected, req.Comments); err != nil {
			return fmt.Errorf("failed to record rejection: %w", err)
		}

		if err := s.ExpenseRepository.UpdateStatus(txCtx, expenseID, expense.StatusRejected); err != nil {
			return fmt.Errorf("failed to reject expense: %w", err)
		}

		return nil
	})
}

// lockActionable locks the expense row and returns the approver's pending
// slot, or the reason the decision cannot proceed.
func (s *DecisionServiceImpl) lockActionable(ctx context.Context, companyID, expenseID, approverID string) (expense.Expense, expense.ExpenseApproval, error) {
	expenseData, err := s.ExpenseRepository.GetByIDForUpdate(ctx, expenseID)
	if err != nil {
		return expense.Expense{}, expense.ExpenseApproval{}, err
	}

	if expenseData.CompanyID != companyID {
		return expense.Expense{}, expense.ExpenseApproval{}, expense.ErrExpenseForbidden
	}
	if expenseData.Status.Terminal() {
		return expense.Expense{}, expense.ExpenseApproval{}, expense.ErrExpenseAlreadyFinalized
	}

	approvalSlot, err := s.ExpenseApprovalRepository.GetByExpenseAndApprover(ctx, expenseID, approverID)
	if err != nil {
		return expense.Expense{}, expense.ExpenseApproval{}, err
	}
	if approvalSlot.Status != expense.ApprovalPending {
		return expense.Expense{}, expense.ExpenseApproval{}, expense.ErrApprovalNotActionable
	}

	return expenseData, approvalSlot, nil
}
